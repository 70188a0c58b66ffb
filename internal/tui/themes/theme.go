// Package themes holds the color themes for the terminal UI.
package themes

import (
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Help          lipgloss.Style
	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	Card          lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusPending lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
	Monochrome    bool
}

// Default is the default theme.
var Default = newTheme(
	lipgloss.Color(model.ColorGreen),
	lipgloss.Color("#8a8a8a"),
	lipgloss.Color("#3a4a3a"),
	lipgloss.Color(model.ColorRed),
	lipgloss.Color("#FFB300"),
	lipgloss.Color("#66BB6A"),
	false,
)

// Mono renders without category colors, for terminals that lack them.
var Mono = newTheme(
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#8a8a8a"),
	lipgloss.Color("#5a5a5a"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#fafafa"),
	true,
)

func newTheme(primary, muted, border, errColor, warning, success lipgloss.Color, mono bool) Theme {
	return Theme{
		Primary:    primary,
		Muted:      muted,
		Border:     border,
		Error:      errColor,
		Warning:    warning,
		Success:    success,
		Monochrome: mono,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle(),
		Bold: lipgloss.NewStyle().
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Underline(true).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			MarginRight(1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),

		StatusPending: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
	}
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "mono":
		return Mono
	default:
		return Default
	}
}

// CategoryColor returns the chart color for a category.
func (t Theme) CategoryColor(c model.Category) lipgloss.Color {
	if t.Monochrome {
		return t.Primary
	}
	return lipgloss.Color(c.Color())
}

// CategoryStyle returns the badge style for a category.
func (t Theme) CategoryStyle(c model.Category) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.CategoryColor(c))
}

// SustainabilityStyle returns the style for a sustainability tier.
func (t Theme) SustainabilityStyle(level string) lipgloss.Style {
	switch level {
	case model.SustainabilityHigh:
		return t.StatusSuccess
	case model.SustainabilityMedium:
		return t.StatusWarning
	default:
		return t.StatusError
	}
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[model.Category]string{
	model.CategoryBiodegradable: "🌱",
	model.CategoryRecyclable:    "♻️",
	model.CategoryHazardous:     "☣️",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(c model.Category) string {
	if icon, ok := CategoryIcons[model.ParseCategory(string(c))]; ok {
		return icon
	}
	return "❔"
}
