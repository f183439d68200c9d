package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tracker/internal/config"
	"tracker/internal/tracker"
)

const (
	flashDuration = 150 * time.Millisecond
	pulseDuration = 500 * time.Millisecond
)

type mode int

const (
	modeList mode = iota
	modeConfirmReset
)

type flashDoneMsg struct{ id int }
type pulseDoneMsg struct{ id int }
type noticeDoneMsg struct{ id int }

type Model struct {
	tracker *tracker.Tracker
	events  *tracker.Recorder
	cfg     config.Config
	keys    keyMap
	help    help.Model
	bar     progress.Model
	styles  styles

	cursor int
	mode   mode
	status string

	notice   string
	noticeID int
	flash    int
	flashID  int
	pulse    int
	pulseID  int
}

func New(tr *tracker.Tracker, cfg config.Config) Model {
	rec := &tracker.Recorder{}
	tr.Subscribe(rec)

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40

	return Model{
		tracker: tr,
		events:  rec,
		cfg:     cfg,
		keys:    newKeyMap(cfg.Keys),
		help:    help.New(),
		bar:     bar,
		styles:  defaultStyles(),
		cursor:  clampCursor(0, tr.Len()),
		mode:    modeList,
		status:  fmt.Sprintf("Press '%s' to toggle a task, '%s' to reset.", helpKey(cfg.Keys.Toggle), cfg.Keys.Reset),
		flash:   -1,
		pulse:   -1,
	}
}

func Run(tr *tracker.Tracker, cfg config.Config) error {
	program := tea.NewProgram(New(tr, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeConfirmReset {
			return m.updateResetConfirm(msg)
		}
		return m.updateListMode(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-4, 10), 60)
	case flashDoneMsg:
		if msg.id == m.flashID {
			m.flash = -1
		}
	case pulseDoneMsg:
		if msg.id == m.pulseID {
			m.pulse = -1
		}
	case noticeDoneMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.tracker.Len()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, n)
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, n)
	case key.Matches(msg, m.keys.NextSection):
		m.cursor = m.nextSectionStart()
	case key.Matches(msg, m.keys.PrevSection):
		m.cursor = m.prevSectionStart()
	case key.Matches(msg, m.keys.Toggle):
		if n == 0 {
			m.status = "No tasks"
			return m, nil
		}
		ch, err := m.tracker.Toggle(m.cursor)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		if ch.Checked {
			m.status = "Checked task"
		} else {
			m.status = "Unchecked task"
		}
		cmd := m.applyEvents()
		return m, cmd
	case key.Matches(msg, m.keys.Reset):
		m.mode = modeConfirmReset
		m.status = fmt.Sprintf("Are you sure you want to reset all tasks? This action cannot be undone. %s/%s",
			m.cfg.Keys.Confirm, m.cfg.Keys.Cancel)
	case key.Matches(msg, m.keys.Print):
		return m.print()
	}
	return m, nil
}

func (m Model) updateResetConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeList
		m.tracker.Reset()
		m.cursor = 0
		m.status = ""
		cmd := m.applyEvents()
		return m, cmd
	case key.Matches(msg, m.keys.Cancel), msg.String() == "ctrl+c":
		m.mode = modeList
		m.status = "Reset cancelled"
	}
	return m, nil
}

func (m Model) print() (tea.Model, tea.Cmd) {
	path := m.cfg.PrintPath
	f, err := os.Create(path)
	if err != nil {
		m.status = fmt.Sprintf("print failed: %v", err)
		return m, nil
	}
	err = m.tracker.Export(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		m.status = fmt.Sprintf("print failed: %v", err)
		return m, nil
	}
	cmd := m.showNotice("Checklist written to " + path)
	return m, cmd
}

// applyEvents turns tracker events into transient view state.
func (m *Model) applyEvents() tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range m.events.Drain() {
		switch e.Kind {
		case tracker.EventFeedback:
			m.flash = e.Index
			m.flashID++
			id := m.flashID
			cmds = append(cmds, tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{id: id} }))
		case tracker.EventSectionCompleted:
			m.pulse = e.Section
			m.pulseID++
			id := m.pulseID
			m.status = "Section complete: " + m.tracker.Snapshot().Sections[e.Section].Title
			cmds = append(cmds, tea.Tick(pulseDuration, func(time.Time) tea.Msg { return pulseDoneMsg{id: id} }))
		case tracker.EventNotification:
			cmds = append(cmds, m.showNotice(e.Message))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeID++
	id := m.noticeID
	d := time.Duration(m.cfg.NotifySeconds) * time.Second
	if d <= 0 {
		d = config.DefaultNotifySeconds * time.Second
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return noticeDoneMsg{id: id} })
}

func (m Model) nextSectionStart() int {
	cur := m.tracker.SectionOf(m.cursor)
	for s := cur + 1; s < m.tracker.NumSections(); s++ {
		start := m.tracker.SectionStart(s)
		if start > m.cursor && start < m.tracker.Len() {
			return start
		}
	}
	return m.cursor
}

func (m Model) prevSectionStart() int {
	cur := m.tracker.SectionOf(m.cursor)
	if cur < 0 {
		return m.cursor
	}
	curStart := m.tracker.SectionStart(cur)
	if curStart < m.cursor {
		return curStart
	}
	for s := cur - 1; s >= 0; s-- {
		if start := m.tracker.SectionStart(s); start < curStart {
			return start
		}
	}
	return m.cursor
}

func (m Model) View() string {
	var b strings.Builder
	snap := m.tracker.Snapshot()

	title := snap.Title
	if title == "" {
		title = "Checklist"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.renderCards(snap))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(float64(snap.Overall.Percentage) / 100))
	b.WriteString("\n\n")

	if snap.Overall.Total == 0 {
		b.WriteString("This checklist has no tasks.\n")
	} else {
		b.WriteString(m.renderSections(snap))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(m.status))
	b.WriteString("\n")
	if m.mode == modeConfirmReset {
		b.WriteString(m.help.View(confirmKeys{Confirm: m.keys.Confirm, Cancel: m.keys.Cancel}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderCards(snap tracker.Snapshot) string {
	card := func(label string, value string) string {
		return m.styles.Card.Render(m.styles.CardValue.Render(value) + "\n" + label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Completed", fmt.Sprintf("%d", snap.Overall.Completed)),
		card("Remaining", fmt.Sprintf("%d", snap.Overall.Remaining)),
		card("Progress", fmt.Sprintf("%d%%", snap.Overall.Percentage)),
	)
}

func (m Model) renderSections(snap tracker.Snapshot) string {
	var b strings.Builder
	for i, s := range snap.Sections {
		p := snap.Progress[i]
		header := m.styles.SectionHeader
		label := m.styles.Progress
		switch {
		case i == m.pulse:
			header = m.styles.SectionPulse
			label = m.styles.ProgressDone
		case p.IsComplete:
			header = m.styles.SectionComplete
			label = m.styles.ProgressDone
		}
		b.WriteString(header.Render(s.Title))
		b.WriteString(" ")
		b.WriteString(label.Render(p.Label()))
		b.WriteString("\n")

		for _, t := range s.Tasks {
			cursor := " "
			if t.Index == m.cursor && m.mode == modeList {
				cursor = m.styles.Cursor.Render(">")
			}
			checkbox := "[ ]"
			style := m.styles.Task
			if t.Checked {
				checkbox = "[x]"
				style = m.styles.TaskDone
			}
			if t.Index == m.flash {
				style = m.styles.TaskFlash
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, style.Render(t.Label)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
