package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/ecosort/internal/analytics"
	"github.com/Veraticus/ecosort/internal/model"
)

// AnalyticsReport is the machine-readable form of an analytics snapshot.
type AnalyticsReport struct {
	Distribution         map[model.Category]int `json:"category_distribution"`
	Insights             InsightsReport         `json:"insights"`
	Start                string                 `json:"start_date"`
	End                  string                 `json:"end_date"`
	Daily                []DailyReport          `json:"daily_statistics"`
	WindowDays           int                    `json:"window_days"`
	TotalClassifications int                    `json:"total_classifications"`
	Empty                bool                   `json:"empty"`
}

// DailyReport is one day of an AnalyticsReport.
type DailyReport struct {
	Date          string `json:"date"`
	Biodegradable int    `json:"biodegradable"`
	Recyclable    int    `json:"recyclable"`
	Hazardous     int    `json:"hazardous"`
	Total         int    `json:"total"`
}

// InsightsReport carries the derived insights.
type InsightsReport struct {
	Dominant      model.Category `json:"dominant_category,omitempty"`
	SharePercent  float64        `json:"dominant_share_percent"`
	AveragePerDay float64        `json:"average_per_day"`
}

// NewAnalyticsReport builds the report for snap.
func NewAnalyticsReport(snap model.Snapshot, window model.Window) AnalyticsReport {
	insights := analytics.ComputeInsights(snap, window)

	report := AnalyticsReport{
		WindowDays:           window.Days(),
		Start:                snap.Range.StartParam(),
		End:                  snap.Range.EndParam(),
		TotalClassifications: snap.TotalClassifications,
		Distribution:         make(map[model.Category]int, len(snap.Distribution)),
		Daily:                make([]DailyReport, 0, len(snap.Daily)),
		Empty:                snap.IsEmpty(),
		Insights: InsightsReport{
			SharePercent:  insights.SharePercent,
			AveragePerDay: insights.AveragePerDay,
		},
	}
	if insights.HasDominant {
		report.Insights.Dominant = insights.Dominant
	}

	for _, bar := range analytics.BarSeries(snap) {
		report.Distribution[bar.Category] = bar.Count
	}
	for _, p := range analytics.LineSeries(snap) {
		report.Daily = append(report.Daily, DailyReport{
			Date:          p.Date.Format(model.DateLayout),
			Biodegradable: p.Biodegradable,
			Recyclable:    p.Recyclable,
			Hazardous:     p.Hazardous,
			Total:         p.Total,
		})
	}

	return report
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
