package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/ecosort/internal/analytics"
	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultChartWidth = 30

// DashboardModel is the analytics dashboard. Window changes issue overlapping
// loads; the aggregator commits only the latest one.
type DashboardModel struct {
	ctx        context.Context
	aggregator *analytics.Aggregator
	theme      themes.Theme
	spinner    spinner.Model
	keys       DashboardKeyMap
	window     model.Window
	chartWidth int
	inflight   int
}

// NewDashboardModel creates a dashboard that starts on window.
func NewDashboardModel(ctx context.Context, agg *analytics.Aggregator, theme themes.Theme, window model.Window) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	if _, err := model.ParseWindow(window.Days()); err != nil {
		window = model.Window7
	}

	return DashboardModel{
		ctx:        ctx,
		aggregator: agg,
		theme:      theme,
		spinner:    s,
		keys:       DefaultDashboardKeyMap(),
		window:     window,
		chartWidth: defaultChartWidth,
		inflight:   1, // the load issued by Init
	}
}

// Init loads the initial window.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(m.window), m.spinner.Tick)
}

// Keys returns the dashboard key bindings for help rendering.
func (m DashboardModel) Keys() DashboardKeyMap {
	return m.keys
}

// Window returns the selected window.
func (m DashboardModel) Window() model.Window {
	return m.window
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Week):
			return m.selectWindow(model.Window7)
		case key.Matches(msg, m.keys.Month):
			return m.selectWindow(model.Window30)
		case key.Matches(msg, m.keys.Quarter):
			return m.selectWindow(model.Window90)
		case key.Matches(msg, m.keys.Next):
			return m.selectWindow(nextWindow(m.window))
		case key.Matches(msg, m.keys.Retry):
			return m.startLoad(m.window)
		}

	case AnalyticsLoadedMsg:
		m.inflight = max(m.inflight-1, 0)
		if msg.Err != nil && !errors.Is(msg.Err, common.ErrEmptyResult) {
			slog.Debug("Analytics load failed", "window", msg.Window, "error", msg.Err)
		}
		return m, nil

	case spinner.TickMsg:
		if m.inflight > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.chartWidth = max(min(msg.Width-40, 50), 10)
	}

	return m, nil
}

func (m DashboardModel) selectWindow(w model.Window) (DashboardModel, tea.Cmd) {
	m.window = w
	return m.startLoad(w)
}

func (m DashboardModel) startLoad(w model.Window) (DashboardModel, tea.Cmd) {
	m.inflight++
	cmds := []tea.Cmd{m.load(w)}
	if m.inflight == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m DashboardModel) load(w model.Window) tea.Cmd {
	ctx, agg := m.ctx, m.aggregator
	return func() tea.Msg {
		return AnalyticsLoadedMsg{Window: w, Err: agg.Load(ctx, w)}
	}
}

func nextWindow(w model.Window) model.Window {
	windows := model.Windows()
	for i, candidate := range windows {
		if candidate == w {
			return windows[(i+1)%len(windows)]
		}
	}
	return windows[0]
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	state := m.aggregator.State()

	sections := []string{
		m.theme.Title.Render("📊 Waste Analytics"),
		m.renderTabs(),
	}

	switch {
	case state.HasError():
		sections = append(sections, "",
			m.theme.StatusError.Render("✗ "+state.Message),
			m.theme.Subtitle.Render("Press r to retry"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)

	case state.Snapshot == nil:
		sections = append(sections, "", m.spinner.View()+" "+m.theme.StatusPending.Render("Loading analytics..."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	snap := *state.Snapshot
	caption := analytics.DateCaption(snap)
	if state.Loading {
		caption = m.spinner.View() + " " + caption
	}
	sections = append(sections, m.theme.Subtitle.Render(caption), "", m.renderSummary(snap))

	if state.Empty {
		sections = append(sections, "", m.theme.StatusPending.Render("No data for the selected period"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		m.section("Category distribution", m.renderPie(analytics.PieSeries(snap))),
		m.section("Items by category", m.renderBars(analytics.BarSeries(snap))),
	)

	sections = append(sections,
		"", charts,
		"", m.section("Daily trends", m.renderTrend(analytics.LineSeries(snap))),
		"", m.section("Insights", m.renderInsights(analytics.ComputeInsights(snap, state.SnapshotWindow))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderTabs() string {
	tabs := make([]string, 0, len(model.Windows()))
	for _, w := range model.Windows() {
		label := fmt.Sprintf("Last %d days", w.Days())
		if w == m.window {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m DashboardModel) renderSummary(snap model.Snapshot) string {
	cards := []string{m.card("Total", snap.TotalClassifications, m.theme.Primary)}
	for _, bar := range analytics.BarSeries(snap) {
		cards = append(cards, m.card(bar.Label, bar.Count, m.theme.CategoryColor(bar.Category)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m DashboardModel) card(label string, count int, color lipgloss.Color) string {
	value := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", count))
	return m.theme.Card.BorderForeground(color).Render(m.theme.Subtitle.Render(label) + "\n" + value)
}

func (m DashboardModel) section(title, body string) string {
	return lipgloss.NewStyle().MarginRight(4).Render(m.theme.Bold.Render(title) + "\n" + body)
}

func (m DashboardModel) meter(c model.Category, ratio float64) string {
	bar := progress.New(
		progress.WithSolidFill(string(m.theme.CategoryColor(c))),
		progress.WithoutPercentage(),
		progress.WithWidth(m.chartWidth),
	)
	return bar.ViewAs(ratio)
}

func (m DashboardModel) renderPie(slices []analytics.PieSlice) string {
	if len(slices) == 0 {
		return m.theme.StatusPending.Render("No classifications")
	}
	total := 0
	for _, s := range slices {
		total += s.Value
	}
	lines := make([]string, 0, len(slices))
	for _, s := range slices {
		ratio := float64(s.Value) / float64(total)
		lines = append(lines, fmt.Sprintf("%-14s %s %5.1f%%", s.Label, m.meter(s.Category, ratio), ratio*100))
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderBars(bars []analytics.Bar) string {
	peak := 0
	for _, b := range bars {
		peak = max(peak, b.Count)
	}
	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		ratio := 0.0
		if peak > 0 {
			ratio = float64(b.Count) / float64(peak)
		}
		lines = append(lines, fmt.Sprintf("%-14s %s %d", b.Label, m.meter(b.Category, ratio), b.Count))
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderTrend(points []analytics.LinePoint) string {
	if len(points) == 0 {
		return m.theme.StatusPending.Render("No daily data")
	}

	header := fmt.Sprintf("%-8s", "Date")
	for _, c := range model.Categories() {
		header += " " + m.theme.CategoryStyle(c).Render(fmt.Sprintf("%14s", c.Label()))
	}
	header += fmt.Sprintf(" %6s", "Total")

	lines := []string{header}
	for _, p := range points {
		line := fmt.Sprintf("%-8s", p.Label)
		for _, c := range model.Categories() {
			line += fmt.Sprintf(" %14d", p.Count(c))
		}
		lines = append(lines, line+fmt.Sprintf(" %6d", p.Total))
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderInsights(in analytics.Insights) string {
	dominant := m.theme.Subtitle.Render("none yet")
	if in.HasDominant {
		dominant = m.theme.CategoryStyle(in.Dominant).Render(in.Dominant.Label()) +
			fmt.Sprintf(" (%.1f%% of classifications)", in.SharePercent)
	}
	return "Most common: " + dominant + "\n" +
		fmt.Sprintf("Average: %.1f items per day over %d days", in.AveragePerDay, in.Window.Days())
}
