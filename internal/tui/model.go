package tui

import (
	"context"

	"github.com/Veraticus/ecosort/internal/analytics"
	"github.com/Veraticus/ecosort/internal/session"
	"github.com/Veraticus/ecosort/internal/tui/components"
	"github.com/Veraticus/ecosort/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the screen the program shows.
type Mode int

const (
	ModeClassify Mode = iota
	ModeDashboard
)

// Model holds the main TUI state.
type Model struct {
	theme      themes.Theme
	help       help.Model
	classifier components.ClassifierModel
	dashboard  components.DashboardModel
	config     Config
	keymap     KeyMap
	width      int
	height     int
	mode       Mode
	quitting   bool
}

func newModel(cfg Config, mode Mode) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		theme:  cfg.Theme,
		help:   h,
		config: cfg,
		keymap: DefaultKeyMap(),
		width:  cfg.Width,
		height: cfg.Height,
		mode:   mode,
	}
}

// NewClassifierModel creates the interactive text classifier program model.
func NewClassifierModel(ctx context.Context, sess *session.Session, opts ...Option) Model {
	cfg := applyOptions(opts)
	m := newModel(cfg, ModeClassify)
	m.classifier = components.NewClassifierModel(ctx, sess, cfg.Theme, cfg.Examples)
	return m
}

// NewDashboardModel creates the analytics dashboard program model.
func NewDashboardModel(ctx context.Context, agg *analytics.Aggregator, opts ...Option) Model {
	cfg := applyOptions(opts)
	m := newModel(cfg, ModeDashboard)
	m.dashboard = components.NewDashboardModel(ctx, agg, cfg.Theme, cfg.Window)
	return m
}

func applyOptions(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.mode == ModeDashboard {
		return m.dashboard.Init()
	}
	return m.classifier.Init()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case components.ShowHelpMsg:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == ModeDashboard {
		m.dashboard, cmd = m.dashboard.Update(msg)
	} else {
		m.classifier, cmd = m.classifier.Update(msg)
	}
	return m, cmd
}

// handleGlobalKeys handles keys that work in any mode. The text classifier
// only reserves Ctrl+C; every other key may be part of a description.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return tea.Quit, true
	case m.mode == ModeClassify:
		return nil, false
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}
	return nil, false
}
