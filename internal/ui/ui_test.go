package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/checklist"
	"tracker/internal/config"
	"tracker/internal/storage"
	"tracker/internal/tracker"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultConfigFileName)
	cfg, err := config.LoadOrCreate(path)
	require.NoError(t, err)
	cfg.PrintPath = filepath.Join(t.TempDir(), "out.txt")
	return cfg
}

func newModel(t *testing.T) (Model, *storage.Store) {
	t.Helper()
	def := checklist.Definition{
		Title: "Moving",
		Sections: []checklist.Section{
			{Title: "A", Tasks: []string{"a1", "a2", "a3"}},
			{Title: "Empty"},
			{Title: "B", Tasks: []string{"b1", "b2"}},
		},
	}
	store := storage.New(storage.NewMemory(), "state")
	tr := tracker.New(def, store)
	tr.Hydrate()
	return New(tr, testConfig(t)), store
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestToggleUpdatesStateAndPersists(t *testing.T) {
	m, store := newModel(t)

	m, cmd := send(t, m, space)
	assert.NotNil(t, cmd, "flash tick scheduled")
	assert.True(t, m.tracker.Checked(0))
	assert.Equal(t, 0, m.flash)
	assert.Equal(t, "Checked task", m.status)

	st, ok := store.Load()
	require.True(t, ok)
	assert.True(t, st["task-0"])

	m, _ = send(t, m, space)
	assert.False(t, m.tracker.Checked(0))
	assert.Equal(t, "Unchecked task", m.status)
}

func TestFlashClearsOnlyForLatestTick(t *testing.T) {
	m, _ := newModel(t)
	m, _ = send(t, m, space, space)
	require.Equal(t, 2, m.flashID)

	m, _ = send(t, m, flashDoneMsg{id: 1})
	assert.Equal(t, 0, m.flash, "stale tick ignored")

	m, _ = send(t, m, flashDoneMsg{id: 2})
	assert.Equal(t, -1, m.flash)
}

func TestCompletingSectionPulsesHeader(t *testing.T) {
	m, _ := newModel(t)
	m, _ = send(t, m, space, runeKey('j'), space, runeKey('j'), space)

	assert.Equal(t, 0, m.pulse)
	assert.Equal(t, "Section complete: A", m.status)

	view := m.View()
	assert.Contains(t, view, "3/3")
	assert.Contains(t, view, "60%")

	m, _ = send(t, m, pulseDoneMsg{id: m.pulseID})
	assert.Equal(t, -1, m.pulse)
}

func TestSectionNavigation(t *testing.T) {
	m, _ := newModel(t)
	tab := tea.KeyMsg{Type: tea.KeyTab}
	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}

	m, _ = send(t, m, tab)
	assert.Equal(t, 3, m.cursor, "empty section is skipped")

	m, _ = send(t, m, tab)
	assert.Equal(t, 3, m.cursor, "last section stays put")

	m, _ = send(t, m, runeKey('j'), shiftTab)
	assert.Equal(t, 3, m.cursor, "back to start of current section")

	m, _ = send(t, m, shiftTab)
	assert.Equal(t, 0, m.cursor)

	m, _ = send(t, m, runeKey('k'))
	assert.Equal(t, 0, m.cursor)
	m, _ = send(t, m, runeKey('j'), runeKey('j'), runeKey('j'), runeKey('j'), runeKey('j'), runeKey('j'))
	assert.Equal(t, 4, m.cursor)
}

func TestResetRequiresConfirmation(t *testing.T) {
	m, store := newModel(t)
	m, _ = send(t, m, space, runeKey('j'), space)

	m, _ = send(t, m, runeKey('r'))
	assert.Equal(t, modeConfirmReset, m.mode)

	m, _ = send(t, m, space)
	assert.True(t, m.tracker.Checked(0), "toggle ignored while confirming")

	m, _ = send(t, m, runeKey('n'))
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Reset cancelled", m.status)
	assert.Equal(t, 2, m.tracker.Overall().Completed)

	m, cmd := send(t, m, runeKey('r'), runeKey('y'))
	assert.NotNil(t, cmd)
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, 0, m.tracker.Overall().Completed)
	assert.Equal(t, tracker.ResetMessage, m.notice)
	assert.Equal(t, 0, m.cursor)

	_, ok := store.Load()
	assert.False(t, ok)

	m, _ = send(t, m, noticeDoneMsg{id: m.noticeID})
	assert.Empty(t, m.notice)
}

func TestPrintWritesExport(t *testing.T) {
	m, _ := newModel(t)
	m, _ = send(t, m, space, runeKey('p'))

	data, err := os.ReadFile(m.cfg.PrintPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Moving\n"))
	assert.Contains(t, string(data), "[x] a1")
	assert.Contains(t, m.notice, m.cfg.PrintPath)
}

func TestPrintFailureShowsStatus(t *testing.T) {
	m, _ := newModel(t)
	m.cfg.PrintPath = filepath.Join(t.TempDir(), "missing", "out.txt")

	m, _ = send(t, m, runeKey('p'))
	assert.True(t, strings.HasPrefix(m.status, "print failed"))
	assert.Empty(t, m.notice)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := send(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEmptyChecklist(t *testing.T) {
	tr := tracker.New(checklist.Definition{}, storage.New(storage.NewMemory(), "s"))
	m := New(tr, testConfig(t))

	m, _ = send(t, m, space)
	assert.Equal(t, "No tasks", m.status)
	assert.Contains(t, m.View(), "0%")
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(3, 0))
	assert.Equal(t, 0, clampCursor(-1, 4))
	assert.Equal(t, 3, clampCursor(9, 4))
	assert.Equal(t, 2, clampCursor(2, 4))
}
