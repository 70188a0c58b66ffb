// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (leaf green).
	PrimaryColor = lipgloss.Color(model.ColorGreen)
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#66BB6A")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFB300") // Amber
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color(model.ColorRed)
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#81D4FA") // Light blue
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	LeafIcon    = "🌱"
	RecycleIcon = "♻️"
	HazardIcon  = "☣️"
	UnknownIcon = "❔"
	ChartIcon   = "📊"
	TipIcon     = "💡"
)

// CategoryStyle returns the style used for a category's badge and chart bars.
func CategoryStyle(c model.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Color()))
}

// CategoryIcon returns the icon shown next to a category.
func CategoryIcon(c model.Category) string {
	switch model.ParseCategory(string(c)) {
	case model.CategoryBiodegradable:
		return LeafIcon
	case model.CategoryRecyclable:
		return RecycleIcon
	case model.CategoryHazardous:
		return HazardIcon
	default:
		return UnknownIcon
	}
}

// FormatCategory renders a category badge with icon and label.
func FormatCategory(c model.Category) string {
	return CategoryStyle(c).Render(CategoryIcon(c) + " " + c.Label())
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the leaf icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(LeafIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
