package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	content := m.classifier.View
	keys := helpKeys{view: m.classifier.Keys(), global: []key.Binding{m.keymap.ForceQuit}}
	if m.mode == ModeDashboard {
		content = m.dashboard.View
		keys = helpKeys{view: m.dashboard.Keys(), global: []key.Binding{m.keymap.Help, m.keymap.Quit}}
	}

	sections := []string{content()}
	if m.config.ShowHelp {
		sections = append(sections, m.theme.Help.Render(m.help.View(keys)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
