package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Veraticus/ecosort/internal/model"
)

// LineDateLayout formats line chart labels. Month names come from the time
// package and do not depend on the user's locale.
const LineDateLayout = "Jan 2"

// PieSlice is one slice of the distribution pie.
type PieSlice struct {
	Category model.Category
	Label    string
	Color    string
	Value    int
}

// Bar is one bar of the category count chart.
type Bar struct {
	Category model.Category
	Label    string
	Color    string
	Count    int
}

// LinePoint is one day of the daily trends chart.
type LinePoint struct {
	Date          time.Time
	Label         string
	Biodegradable int
	Recyclable    int
	Hazardous     int
	Total         int
}

// Count returns the point's value for c.
func (p LinePoint) Count(c model.Category) int {
	switch c {
	case model.CategoryBiodegradable:
		return p.Biodegradable
	case model.CategoryRecyclable:
		return p.Recyclable
	case model.CategoryHazardous:
		return p.Hazardous
	default:
		return 0
	}
}

// Insights are scalar facts derived from a snapshot.
type Insights struct {
	Dominant      model.Category
	DominantCount int
	SharePercent  float64
	AveragePerDay float64
	Window        model.Window
	HasDominant   bool
}

// PieSeries returns one slice per known category with a positive count, in
// category enumeration order.
func PieSeries(snap model.Snapshot) []PieSlice {
	slices := make([]PieSlice, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		count := snap.Distribution.Count(cat)
		if count <= 0 {
			continue
		}
		slices = append(slices, PieSlice{
			Category: cat,
			Label:    cat.Label(),
			Value:    count,
			Color:    cat.Color(),
		})
	}
	return slices
}

// BarSeries returns exactly one bar per known category, zero-filled.
func BarSeries(snap model.Snapshot) []Bar {
	bars := make([]Bar, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		bars = append(bars, Bar{
			Category: cat,
			Label:    cat.Label(),
			Count:    snap.Distribution.Count(cat),
			Color:    cat.Color(),
		})
	}
	return bars
}

// LineSeries returns one point per daily statistic in ascending date order.
func LineSeries(snap model.Snapshot) []LinePoint {
	points := make([]LinePoint, 0, len(snap.Daily))
	for _, day := range snap.Daily {
		points = append(points, LinePoint{
			Date:          day.Date,
			Label:         day.Date.Format(LineDateLayout),
			Biodegradable: day.Count(model.CategoryBiodegradable),
			Recyclable:    day.Count(model.CategoryRecyclable),
			Hazardous:     day.Count(model.CategoryHazardous),
			Total:         day.Total,
		})
	}
	// Snapshots built outside DecodeSnapshot may not be sorted.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// ComputeInsights derives the dominant category and the daily average.
// Ties go to the category that comes first in enumeration order.
func ComputeInsights(snap model.Snapshot, window model.Window) Insights {
	insights := Insights{Window: window}

	for _, cat := range model.Categories() {
		count := snap.Distribution.Count(cat)
		if count > insights.DominantCount {
			insights.Dominant = cat
			insights.DominantCount = count
			insights.HasDominant = true
		}
	}

	if insights.HasDominant && snap.TotalClassifications > 0 {
		share := float64(insights.DominantCount) / float64(snap.TotalClassifications) * 100
		insights.SharePercent = roundTenth(share)
	}

	if window.Days() > 0 {
		insights.AveragePerDay = roundTenth(float64(snap.TotalClassifications) / float64(window.Days()))
	}

	return insights
}

// DateCaption formats the snapshot's range for display.
func DateCaption(snap model.Snapshot) string {
	return "Data shown for " + snap.Range.Start.Format(LineDateLayout) + " to " + snap.Range.End.Format(LineDateLayout)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
