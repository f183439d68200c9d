// Package tracker owns the checklist's in-memory task state and keeps it in
// sync with the persisted copy. Presentation layers read Snapshot and react
// to events; they never hold task state of their own.
//
// A Tracker is not safe for concurrent use.
package tracker

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tracker/internal/checklist"
	"tracker/internal/progress"
	"tracker/internal/storage"
)

// ErrTaskOutOfRange is returned for a task index outside the checklist.
var ErrTaskOutOfRange = errors.New("task index out of range")

const ResetMessage = "All tasks have been reset"

// StateStore is the persistence the tracker needs; *storage.Store satisfies it.
type StateStore interface {
	Load() (storage.State, bool)
	Save(checked []bool)
	Clear()
}

type Task struct {
	Index   int
	Label   string
	Checked bool
}

type Section struct {
	Title string
	Tasks []Task
}

type Snapshot struct {
	Title    string
	Sections []Section
	Overall  progress.Summary
	Progress []progress.SectionSummary
}

// Change describes the outcome of a single toggle.
type Change struct {
	Index            int
	Section          int
	Checked          bool
	Overall          progress.Summary
	SectionProgress  progress.SectionSummary
	SectionCompleted bool
}

type Tracker struct {
	def       checklist.Definition
	checked   []bool
	offsets   []int
	store     StateStore
	listeners []Listener
	logger    *zap.Logger
}

type Option func(*Tracker)

func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

func WithListener(l Listener) Option {
	return func(t *Tracker) { t.listeners = append(t.listeners, l) }
}

// New builds a tracker with every task unchecked. Call Hydrate to apply
// saved state.
func New(def checklist.Definition, store StateStore, opts ...Option) *Tracker {
	t := &Tracker{
		def:     def,
		checked: make([]bool, def.TaskCount()),
		offsets: def.Offsets(),
		store:   store,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Subscribe(l Listener) {
	t.listeners = append(t.listeners, l)
}

// Hydrate applies saved state. Keys that are missing or beyond the task
// count are ignored; absent state leaves every task unchecked.
func (t *Tracker) Hydrate() {
	st, ok := t.store.Load()
	if !ok {
		return
	}
	applied := 0
	for i := range t.checked {
		if v, found := st[checklist.Key(i)]; found {
			t.checked[i] = v
			applied++
		}
	}
	if len(st) > applied {
		t.logger.Debug("ignored saved keys without a matching task", zap.Int("ignored", len(st)-applied))
	}
	t.logger.Info("hydrated", zap.Int("tasks", len(t.checked)), zap.Int("completed", progress.Overall(t.checked).Completed))
	t.emit(Event{Kind: EventProgress, Section: -1, Index: -1})
}

func (t *Tracker) Len() int { return len(t.checked) }

func (t *Tracker) NumSections() int { return len(t.def.Sections) }

func (t *Tracker) Checked(index int) bool {
	if index < 0 || index >= len(t.checked) {
		return false
	}
	return t.checked[index]
}

// Toggle flips the task at index.
func (t *Tracker) Toggle(index int) (Change, error) {
	if index < 0 || index >= len(t.checked) {
		return Change{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, index)
	}
	return t.Set(index, !t.checked[index])
}

// Set assigns the task's checked flag and runs the sync steps: feedback,
// recompute, persist, completion check.
func (t *Tracker) Set(index int, checked bool) (Change, error) {
	section, _, err := t.def.Locate(index)
	if err != nil || index >= len(t.checked) {
		return Change{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, index)
	}
	wasComplete := t.sectionSummary(section).IsComplete

	t.checked[index] = checked
	t.emit(Event{Kind: EventFeedback, Section: section, Index: index})

	ch := Change{
		Index:           index,
		Section:         section,
		Checked:         checked,
		Overall:         progress.Overall(t.checked),
		SectionProgress: t.sectionSummary(section),
	}
	t.emit(Event{Kind: EventProgress, Section: section, Index: index})

	t.store.Save(t.checked)

	if !wasComplete && ch.SectionProgress.IsComplete {
		ch.SectionCompleted = true
		t.logger.Info("section completed", zap.String("section", t.def.Sections[section].Title))
		t.emit(Event{Kind: EventSectionCompleted, Section: section, Index: index})
	}
	return ch, nil
}

// Reset unchecks every task and removes the saved state. Confirmation is the
// caller's concern.
func (t *Tracker) Reset() {
	for i := range t.checked {
		t.checked[i] = false
	}
	t.emit(Event{Kind: EventProgress, Section: -1, Index: -1})
	t.store.Clear()
	t.logger.Info("reset all tasks", zap.Int("tasks", len(t.checked)))
	t.emit(Event{Kind: EventNotification, Section: -1, Index: -1, Message: ResetMessage})
}

func (t *Tracker) Overall() progress.Summary {
	return progress.Overall(t.checked)
}

func (t *Tracker) PerSection() []progress.SectionSummary {
	out := make([]progress.SectionSummary, len(t.def.Sections))
	for i := range t.def.Sections {
		out[i] = t.sectionSummary(i)
	}
	return out
}

func (t *Tracker) sectionSummary(i int) progress.SectionSummary {
	start := t.offsets[i]
	return progress.Section(t.checked[start : start+len(t.def.Sections[i].Tasks)])
}

// SectionOf returns the section index holding the task at index, or -1.
func (t *Tracker) SectionOf(index int) int {
	s, _, err := t.def.Locate(index)
	if err != nil {
		return -1
	}
	return s
}

// SectionStart returns the flattened index of the section's first task.
func (t *Tracker) SectionStart(section int) int {
	if section < 0 || section >= len(t.offsets) {
		return 0
	}
	return t.offsets[section]
}

func (t *Tracker) Snapshot() Snapshot {
	snap := Snapshot{
		Title:    t.def.Title,
		Sections: make([]Section, len(t.def.Sections)),
		Overall:  t.Overall(),
		Progress: t.PerSection(),
	}
	for i, s := range t.def.Sections {
		tasks := make([]Task, len(s.Tasks))
		for j, label := range s.Tasks {
			idx := t.offsets[i] + j
			tasks[j] = Task{Index: idx, Label: label, Checked: t.checked[idx]}
		}
		snap.Sections[i] = Section{Title: s.Title, Tasks: tasks}
	}
	return snap
}
