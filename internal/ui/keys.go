package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"tracker/internal/config"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Toggle      key.Binding
	Reset       key.Binding
	Print       key.Binding
	Quit        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(helpKey(k.Up)+"/↑", "up")),
		Down:        key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(helpKey(k.Down)+"/↓", "down")),
		NextSection: key.NewBinding(key.WithKeys(k.NextSection), key.WithHelp(helpKey(k.NextSection), "next section")),
		PrevSection: key.NewBinding(key.WithKeys(k.PrevSection), key.WithHelp(helpKey(k.PrevSection), "prev section")),
		Toggle:      key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(helpKey(k.Toggle), "toggle")),
		Reset:       key.NewBinding(key.WithKeys(k.Reset), key.WithHelp(helpKey(k.Reset), "reset")),
		Print:       key.NewBinding(key.WithKeys(k.Print), key.WithHelp(helpKey(k.Print), "print")),
		Quit:        key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(helpKey(k.Quit), "quit")),
		Confirm:     key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(helpKey(k.Confirm), "confirm")),
		Cancel:      key.NewBinding(key.WithKeys(k.Cancel, "esc"), key.WithHelp(helpKey(k.Cancel), "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSection, k.Toggle, k.Reset, k.Print, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSection, k.PrevSection},
		{k.Toggle, k.Reset, k.Print, k.Quit},
	}
}

type confirmKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (k confirmKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Confirm, k.Cancel} }
func (k confirmKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func helpKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
