package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the search surface.
type KeyMap struct {
	// Toggle opens and closes the search dialog.
	Toggle key.Binding

	// Close closes the dialog and resets the query and chat.
	Close key.Binding

	// Up and Down move the selection.
	Up   key.Binding
	Down key.Binding

	// Select opens the selected page or starts the chat.
	Select key.Binding

	// Quit exits the program. Plain q only works while the dialog is closed.
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "search"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// helpLine renders bindings as "key desc" pairs.
func helpLine(s *Styles, bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += s.Muted.Render(" · ")
		}
		out += s.HelpKey.Render(b.Help().Key) + " " + s.Muted.Render(b.Help().Desc)
	}
	return out
}
