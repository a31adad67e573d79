package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application. The search box is
// always focused, so no binding uses a printable character.
type KeyMap struct {
	// Result list
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding

	// Pagination
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding

	// Actions
	Clear key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "overview"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+right"),
			key.WithHelp("PgDn", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "ctrl+left"),
			key.WithHelp("PgUp", "prev page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("C-home", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("C-end", "last page"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Detail, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.Clear, k.Quit},
	}
}

// Keys is the active key map
var Keys = DefaultKeyMap()
