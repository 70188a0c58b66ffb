package tui

import (
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Examples []string
	Width    int
	Height   int
	Window   model.Window
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// DefaultExamples are the example descriptions offered by the text classifier.
var DefaultExamples = []string{
	"used plastic water bottle",
	"banana peel",
	"old batteries",
	"empty glass jar",
	"coffee grounds",
	"broken electronics",
	"newspaper",
	"paint cans",
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Examples: DefaultExamples,
		Width:    80,
		Height:   24,
		Window:   model.Window7,
		ShowHelp: true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithExamples replaces the example descriptions.
func WithExamples(examples []string) Option {
	return func(c *Config) {
		c.Examples = examples
	}
}

// WithWindow sets the dashboard's initial window.
func WithWindow(window model.Window) Option {
	return func(c *Config) {
		c.Window = window
	}
}

// WithHelp toggles the help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
