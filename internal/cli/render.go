package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/ecosort/internal/analytics"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

// RenderResult formats a classification result.
func RenderResult(r model.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", FormatCategory(r.Category),
		SubtleStyle.Render(fmt.Sprintf("%.1f%% confidence", r.ConfidencePercent())))
	fmt.Fprintf(&b, "Sustainability: %s (%.1f/10)\n",
		sustainabilityStyle(r.SustainabilityLevel()).Render(r.SustainabilityLevel()), r.SustainabilityScore)

	if r.EnvironmentalImpact != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", BoldStyle.Render("Environmental impact"), r.EnvironmentalImpact)
	}

	if len(r.DisposalTips) > 0 {
		fmt.Fprintf(&b, "\n%s\n", BoldStyle.Render("Disposal tips"))
		for _, tip := range r.DisposalTips {
			fmt.Fprintf(&b, "  • %s\n", tip)
		}
	}

	if r.ID != "" {
		fmt.Fprintf(&b, "\n%s\n", SubtleStyle.Render("id: "+r.ID))
	}

	return RenderBox("Classification", strings.TrimRight(b.String(), "\n"))
}

func sustainabilityStyle(level string) lipgloss.Style {
	switch level {
	case model.SustainabilityHigh:
		return SuccessStyle
	case model.SustainabilityMedium:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// RenderTips formats the disposal guidance for a category.
func RenderTips(t model.Tips) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", FormatCategory(t.Category),
		SubtleStyle.Render(fmt.Sprintf("sustainability %.1f/10", t.Score)))
	if t.Impact != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Impact)
	}
	if len(t.Tips) > 0 {
		b.WriteString("\n")
		for _, tip := range t.Tips {
			fmt.Fprintf(&b, "  %s %s\n", TipIcon, tip)
		}
	}
	return RenderBox("Disposal tips", strings.TrimRight(b.String(), "\n"))
}

// RenderServiceInfo formats the service status.
func RenderServiceInfo(info model.ServiceInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", info.Message)
	fmt.Fprintf(&b, "Status:  %s\n", SuccessStyle.Render(info.Status))
	if info.Version != "" {
		fmt.Fprintf(&b, "Version: %s\n", info.Version)
	}

	if len(info.Endpoints) > 0 {
		names := make([]string, 0, len(info.Endpoints))
		for name := range info.Endpoints {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(&b, "\n%s\n", BoldStyle.Render("Endpoints"))
		for _, name := range names {
			fmt.Fprintf(&b, "  %-16s %s\n", name, SubtleStyle.Render(info.Endpoints[name]))
		}
	}
	return RenderBox("Service", strings.TrimRight(b.String(), "\n"))
}

// RenderSummary formats the summary cards: the total and one card per category.
func RenderSummary(snap model.Snapshot) string {
	cards := []string{summaryCard("Total", snap.TotalClassifications, PrimaryColor)}
	for _, bar := range analytics.BarSeries(snap) {
		cards = append(cards, summaryCard(bar.Label, bar.Count, lipgloss.Color(bar.Color)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func summaryCard(label string, count int, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		MarginRight(1).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			SubtleStyle.Render(label),
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", count))))
}

// RenderPie formats the distribution as share bars. Categories without
// classifications are omitted.
func RenderPie(slices []analytics.PieSlice) string {
	if len(slices) == 0 {
		return SubtleStyle.Render("No classifications in this period")
	}

	total := 0
	for _, s := range slices {
		total += s.Value
	}

	var b strings.Builder
	for _, s := range slices {
		share := float64(s.Value) / float64(total) * 100
		fmt.Fprintf(&b, "%-14s %s %5.1f%%\n", s.Label, bar(s.Value, total, s.Color), share)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderBars formats per-category counts. All categories are shown.
func RenderBars(bars []analytics.Bar) string {
	peak := 0
	for _, b := range bars {
		peak = max(peak, b.Count)
	}

	var b strings.Builder
	for _, item := range bars {
		fmt.Fprintf(&b, "%-14s %s %d\n", item.Label, bar(item.Count, peak, item.Color), item.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderTrend formats the daily series as a table.
func RenderTrend(points []analytics.LinePoint) string {
	if len(points) == 0 {
		return SubtleStyle.Render("No daily data")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-8s %14s %11s %10s %6s", "Date",
		model.CategoryBiodegradable.Label(), model.CategoryRecyclable.Label(), model.CategoryHazardous.Label(), "Total")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")
	for _, p := range points {
		fmt.Fprintf(&b, "%-8s %14d %11d %10d %6d\n", p.Label, p.Biodegradable, p.Recyclable, p.Hazardous, p.Total)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderInsights formats the derived insights.
func RenderInsights(in analytics.Insights) string {
	lines := make([]string, 0, 2)
	if in.HasDominant {
		lines = append(lines, fmt.Sprintf("Most common: %s (%.1f%% of classifications)",
			FormatCategory(in.Dominant), in.SharePercent))
	} else {
		lines = append(lines, "Most common: "+SubtleStyle.Render("none yet"))
	}
	lines = append(lines, fmt.Sprintf("Average: %.1f items per day over %d days", in.AveragePerDay, in.Window.Days()))
	return strings.Join(lines, "\n")
}

// RenderAnalytics formats a full analytics report for one window.
func RenderAnalytics(snap model.Snapshot, window model.Window) string {
	sections := []string{
		FormatTitle(fmt.Sprintf("Waste analytics, last %d days", window.Days())),
		SubtleStyle.Render(analytics.DateCaption(snap)),
		"",
		RenderSummary(snap),
	}

	if snap.IsEmpty() {
		sections = append(sections, "", FormatInfo("No data for the selected period"))
		return strings.Join(sections, "\n")
	}

	sections = append(sections,
		"", BoldStyle.Render("Distribution"), RenderPie(analytics.PieSeries(snap)),
		"", BoldStyle.Render("By category"), RenderBars(analytics.BarSeries(snap)),
		"", BoldStyle.Render("Daily trends"), RenderTrend(analytics.LineSeries(snap)),
		"", BoldStyle.Render("Insights"), RenderInsights(analytics.ComputeInsights(snap, window)),
	)
	return strings.Join(sections, "\n")
}

func bar(value, total int, color string) string {
	filled := 0
	if total > 0 {
		filled = value * barWidth / total
	}
	if value > 0 && filled == 0 {
		filled = 1
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", barWidth-filled))
}
