package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Check      key.Binding
	Clear      key.Binding
	History    key.Binding
	ShowTables key.Binding
	ShowStats  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Check: key.NewBinding(
		key.WithKeys("ctrl+enter", "ctrl+e"),
		key.WithHelp("ctrl+e", "check statement"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear editor"),
	),
	History: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "previous statement"),
	),
	ShowTables: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "show tables"),
	),
	ShowStats: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "show stats"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Check, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Check, k.Clear, k.History},
		{k.ShowTables, k.ShowStats, k.Help, k.Quit},
	}
}
