package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#8B6F47")
	success = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#6C6C6C")
)

type styles struct {
	Title           lipgloss.Style
	Card            lipgloss.Style
	CardValue       lipgloss.Style
	SectionHeader   lipgloss.Style
	SectionComplete lipgloss.Style
	SectionPulse    lipgloss.Style
	Progress        lipgloss.Style
	ProgressDone    lipgloss.Style
	Task            lipgloss.Style
	TaskDone        lipgloss.Style
	TaskFlash       lipgloss.Style
	Cursor          lipgloss.Style
	Notice          lipgloss.Style
	Status          lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:           lipgloss.NewStyle().Bold(true).Foreground(accent),
		Card:            lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 2),
		CardValue:       lipgloss.NewStyle().Bold(true),
		SectionHeader:   lipgloss.NewStyle().Bold(true),
		SectionComplete: lipgloss.NewStyle().Bold(true).Foreground(success),
		SectionPulse:    lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(success),
		Progress:        lipgloss.NewStyle().Foreground(muted),
		ProgressDone:    lipgloss.NewStyle().Foreground(success),
		Task:            lipgloss.NewStyle(),
		TaskDone:        lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		TaskFlash:       lipgloss.NewStyle().Reverse(true),
		Cursor:          lipgloss.NewStyle().Foreground(accent).Bold(true),
		Notice:          lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 2),
		Status:          lipgloss.NewStyle().Foreground(muted),
	}
}
