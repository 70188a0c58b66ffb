package components

import "github.com/charmbracelet/bubbles/key"

// ClassifierKeyMap defines the text classifier shortcuts.
type ClassifierKeyMap struct {
	Submit  key.Binding
	Retry   key.Binding
	Clear   key.Binding
	Example key.Binding
}

// DefaultClassifierKeyMap returns the default classifier bindings. Printable
// keys are left to the text input.
func DefaultClassifierKeyMap() ClassifierKeyMap {
	return ClassifierKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "classify"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "retry"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "clear"),
		),
		Example: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next example"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k ClassifierKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Example, k.Retry, k.Clear}
}

// FullHelp returns all key bindings for the full help view.
func (k ClassifierKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DashboardKeyMap defines the analytics dashboard shortcuts.
type DashboardKeyMap struct {
	Week    key.Binding
	Month   key.Binding
	Quarter key.Binding
	Next    key.Binding
	Retry   key.Binding
}

// DefaultDashboardKeyMap returns the default dashboard bindings.
func DefaultDashboardKeyMap() DashboardKeyMap {
	return DashboardKeyMap{
		Week: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "7 days"),
		),
		Month: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "30 days"),
		),
		Quarter: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "90 days"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("Tab", "next range"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k DashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Week, k.Month, k.Quarter, k.Retry}
}

// FullHelp returns all key bindings for the full help view.
func (k DashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Week, k.Month, k.Quarter},
		{k.Next, k.Retry},
	}
}
