package storage

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
)

// FileBackend stores each key as its own file under dir.
type FileBackend struct {
	dir string
}

func OpenFile(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("state dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key)+".json")
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put writes through a temp file so a crash never leaves a torn value.
func (b *FileBackend) Put(key string, value []byte) error {
	tmp, err := os.CreateTemp(b.dir, ".state-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path(key))
}

func (b *FileBackend) Delete(key string) error {
	err := os.Remove(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (b *FileBackend) Close() error { return nil }
