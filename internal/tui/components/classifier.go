package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/session"
	"github.com/Veraticus/ecosort/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ClassifierModel is the interactive text classifier. All classification
// state lives in the session; the model only renders it.
type ClassifierModel struct {
	ctx        context.Context
	session    *session.Session
	theme      themes.Theme
	input      textinput.Model
	spinner    spinner.Model
	keys       ClassifierKeyMap
	examples   []string
	inputErr   string
	exampleIdx int
	width      int
}

// NewClassifierModel creates a classifier bound to sess.
func NewClassifierModel(ctx context.Context, sess *session.Session, theme themes.Theme, examples []string) ClassifierModel {
	input := textinput.New()
	input.Placeholder = "e.g., used plastic water bottle, banana peel, old batteries..."
	input.CharLimit = model.MaxTextLength
	input.Width = 60
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return ClassifierModel{
		ctx:      ctx,
		session:  sess,
		theme:    theme,
		input:    input,
		spinner:  s,
		keys:     DefaultClassifierKeyMap(),
		examples: examples,
	}
}

// Init returns initial commands.
func (m ClassifierModel) Init() tea.Cmd {
	return textinput.Blink
}

// Keys returns the classifier key bindings for help rendering.
func (m ClassifierModel) Keys() ClassifierKeyMap {
	return m.keys
}

// Update handles messages.
func (m ClassifierModel) Update(msg tea.Msg) (ClassifierModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ClassifyDoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, common.ErrNotReady) {
			slog.Debug("Classification settled with error", "error", msg.Err)
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(min(msg.Width-8, 80), 20)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ClassifierModel) handleKey(msg tea.KeyMsg) (ClassifierModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Retry):
		if !m.session.State().CanRetry() {
			return m, nil
		}
		return m, tea.Batch(m.request(m.session.Retry), m.spinner.Tick)

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.input.Reset()
		m.inputErr = ""
		return m, nil

	case key.Matches(msg, m.keys.Example):
		if len(m.examples) == 0 {
			return m, nil
		}
		m.input.SetValue(m.examples[m.exampleIdx%len(m.examples)])
		m.input.CursorEnd()
		m.exampleIdx++
		m.inputErr = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit stages the typed text and classifies it. While a request is in
// flight the text is left unstaged and the session ignores the request.
func (m ClassifierModel) submit() (ClassifierModel, tea.Cmd) {
	if !m.session.State().IsPending() {
		in, err := model.NewTextInput(m.input.Value())
		if err != nil {
			m.inputErr = "Please enter a description of the waste item"
			if strings.TrimSpace(m.input.Value()) != "" {
				m.inputErr = common.DisplayMessage(err, session.FallbackMessage)
			}
			return m, nil
		}
		if err := m.session.SetInput(in); err != nil {
			m.inputErr = common.DisplayMessage(err, session.FallbackMessage)
			return m, nil
		}
		m.inputErr = ""
	}
	return m, tea.Batch(m.request(m.session.Classify), m.spinner.Tick)
}

// busy reports whether a request is in flight or about to be sent. Staged
// input is always submitted right away, so Ready is transient here.
func (m ClassifierModel) busy() bool {
	status := m.session.State().Status
	return status == session.StatusReady || status == session.StatusPending
}

func (m ClassifierModel) request(op func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return ClassifyDoneMsg{Err: op(ctx)}
	}
}

// View renders the classifier.
func (m ClassifierModel) View() string {
	state := m.session.State()

	sections := []string{
		m.theme.Title.Render(themes.GetCategoryIcon(model.CategoryBiodegradable) + " Describe a waste item"),
		m.input.View(),
	}

	if m.inputErr != "" {
		sections = append(sections, m.theme.StatusError.Render(m.inputErr))
	}

	switch state.Status {
	case session.StatusReady, session.StatusPending:
		sections = append(sections, "", m.spinner.View()+" "+m.theme.StatusPending.Render("Classifying "+state.Input.Describe()+"..."))
	case session.StatusFailed:
		hint := "Press Enter to try again"
		if state.Retryable {
			hint = "Press Ctrl+R to retry"
		}
		sections = append(sections, "",
			m.theme.StatusError.Render("✗ "+state.Message),
			m.theme.Subtitle.Render(hint))
	case session.StatusSucceeded:
		sections = append(sections, "", RenderResult(m.theme, *state.Result))
	}

	if len(m.examples) > 0 && state.Status != session.StatusSucceeded {
		sections = append(sections, "", m.renderExamples())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ClassifierModel) renderExamples() string {
	chips := make([]string, 0, len(m.examples))
	for _, ex := range m.examples {
		chips = append(chips, m.theme.Tab.Render(ex))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.Render("Try these examples (Tab):"),
		lipgloss.NewStyle().Width(max(m.width, 60)).Render(strings.Join(chips, " ")))
}

// RenderResult renders a classification result card.
func RenderResult(theme themes.Theme, r model.Result) string {
	lines := []string{
		theme.CategoryStyle(r.Category).Render(themes.GetCategoryIcon(r.Category)+" "+r.Category.Label()) +
			"  " + theme.Subtitle.Render(fmt.Sprintf("%.1f%% confidence", r.ConfidencePercent())),
		"Sustainability: " + theme.SustainabilityStyle(r.SustainabilityLevel()).Render(r.SustainabilityLevel()) +
			fmt.Sprintf(" (%.1f/10)", r.SustainabilityScore),
	}

	if r.EnvironmentalImpact != "" {
		lines = append(lines, "", theme.Bold.Render("Environmental impact"), r.EnvironmentalImpact)
	}
	if len(r.DisposalTips) > 0 {
		lines = append(lines, "", theme.Bold.Render("Disposal tips"))
		for _, tip := range r.DisposalTips {
			lines = append(lines, "  • "+tip)
		}
	}

	return theme.RoundedBox.
		BorderForeground(theme.CategoryColor(r.Category)).
		Render(strings.Join(lines, "\n"))
}
