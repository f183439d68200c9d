// Package storage persists the tracker's checked-state mapping.
//
// The state is a single JSON object keyed "task-<index>" stored under one
// key of a Backend. Read and write failures are logged and swallowed: the
// in-memory state owned by the caller stays authoritative.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tracker/internal/checklist"
)

// State maps persisted task keys to their checked flag.
type State map[string]bool

// Backend is a durable string-keyed blob store.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// ReadError reports saved data that could not be read or parsed.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read state %q: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed save or clear.
type WriteError struct {
	Key string
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s state %q: %v", e.Op, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

type Store struct {
	backend Backend
	key     string
	layout  string
	logger  *zap.Logger
	lastErr error
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLayout records fingerprint alongside each save and warns on load when
// the saved fingerprint differs.
func WithLayout(fingerprint string) Option {
	return func(s *Store) { s.layout = fingerprint }
}

func New(backend Backend, key string, opts ...Option) *Store {
	s := &Store{backend: backend, key: key, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("state_key", key))
	return s
}

func (s *Store) layoutKey() string { return s.key + ".layout" }

// Load returns the saved state, or false when nothing is saved or the saved
// payload cannot be used.
func (s *Store) Load() (State, bool) {
	raw, ok, err := s.backend.Get(s.key)
	if err != nil {
		s.fail(&ReadError{Key: s.key, Err: err})
		return nil, false
	}
	if !ok {
		s.logger.Debug("no saved state")
		return nil, false
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		s.fail(&ReadError{Key: s.key, Err: err})
		return nil, false
	}
	if st == nil {
		// "null" decodes without error
		s.fail(&ReadError{Key: s.key, Err: errors.New("payload is not an object")})
		return nil, false
	}
	s.checkLayout()
	s.logger.Debug("loaded state", zap.Int("keys", len(st)))
	return st, true
}

func (s *Store) checkLayout() {
	if s.layout == "" {
		return
	}
	saved, ok, err := s.backend.Get(s.layoutKey())
	if err != nil || !ok {
		return
	}
	if string(saved) != s.layout {
		s.logger.Warn("checklist layout changed since state was saved; tasks are matched by position",
			zap.String("saved", string(saved)),
			zap.String("current", s.layout))
	}
}

// Save overwrites the saved state with checked, keyed by position.
func (s *Store) Save(checked []bool) {
	st := make(State, len(checked))
	for i, c := range checked {
		st[checklist.Key(i)] = c
	}
	raw, err := json.Marshal(st)
	if err != nil {
		s.fail(&WriteError{Key: s.key, Op: "save", Err: err})
		return
	}
	if err := s.backend.Put(s.key, raw); err != nil {
		s.fail(&WriteError{Key: s.key, Op: "save", Err: err})
		return
	}
	if s.layout != "" {
		if err := s.backend.Put(s.layoutKey(), []byte(s.layout)); err != nil {
			s.fail(&WriteError{Key: s.layoutKey(), Op: "save", Err: err})
			return
		}
	}
	s.lastErr = nil
}

// Clear removes the saved state entirely.
func (s *Store) Clear() {
	if err := s.backend.Delete(s.key); err != nil {
		s.fail(&WriteError{Key: s.key, Op: "clear", Err: err})
		return
	}
	if err := s.backend.Delete(s.layoutKey()); err != nil {
		s.fail(&WriteError{Key: s.layoutKey(), Op: "clear", Err: err})
		return
	}
	s.lastErr = nil
}

// Err returns the failure of the most recent operation, if any.
func (s *Store) Err() error { return s.lastErr }

func (s *Store) Close() error { return s.backend.Close() }

func (s *Store) fail(err error) {
	s.lastErr = err
	var rerr *ReadError
	if errors.As(err, &rerr) {
		s.logger.Warn("failed to load state", zap.Error(err))
		return
	}
	s.logger.Error("failed to persist state", zap.Error(err))
}
