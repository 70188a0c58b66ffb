package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the application-level shortcuts. View-specific keys live
// with their components.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// helpKeys joins a component's bindings with the application bindings.
type helpKeys struct {
	view   help.KeyMap
	global []key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (h helpKeys) ShortHelp() []key.Binding {
	return append(append([]key.Binding{}, h.view.ShortHelp()...), h.global...)
}

// FullHelp returns all key bindings for the full help view.
func (h helpKeys) FullHelp() [][]key.Binding {
	return append(append([][]key.Binding{}, h.view.FullHelp()...), h.global)
}
