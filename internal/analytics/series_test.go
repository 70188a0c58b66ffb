package analytics

import (
	"testing"
	"time"

	"github.com/Veraticus/ecosort/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, date string, bio, rec, haz, total int) model.DailyStatistic {
	t.Helper()
	d, err := time.Parse(model.DateLayout, date)
	require.NoError(t, err)
	return model.DailyStatistic{
		Date: d,
		Counts: map[model.Category]int{
			model.CategoryBiodegradable: bio,
			model.CategoryRecyclable:    rec,
			model.CategoryHazardous:     haz,
		},
		Total: total,
	}
}

func TestPieSeries(t *testing.T) {
	tests := []struct {
		name         string
		distribution model.Distribution
		want         []PieSlice
	}{
		{
			name:         "only recyclable",
			distribution: model.Distribution{model.CategoryRecyclable: 5},
			want: []PieSlice{
				{Category: model.CategoryRecyclable, Label: "Recyclable", Value: 5, Color: model.ColorBlue},
			},
		},
		{
			name: "all categories in enumeration order",
			distribution: model.Distribution{
				model.CategoryHazardous:     1,
				model.CategoryBiodegradable: 6,
				model.CategoryRecyclable:    3,
			},
			want: []PieSlice{
				{Category: model.CategoryBiodegradable, Label: "Biodegradable", Value: 6, Color: model.ColorGreen},
				{Category: model.CategoryRecyclable, Label: "Recyclable", Value: 3, Color: model.ColorBlue},
				{Category: model.CategoryHazardous, Label: "Hazardous", Value: 1, Color: model.ColorRed},
			},
		},
		{
			name: "zero counts omitted",
			distribution: model.Distribution{
				model.CategoryBiodegradable: 0,
				model.CategoryHazardous:     2,
			},
			want: []PieSlice{
				{Category: model.CategoryHazardous, Label: "Hazardous", Value: 2, Color: model.ColorRed},
			},
		},
		{
			name:         "empty",
			distribution: model.Distribution{},
			want:         []PieSlice{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PieSeries(model.Snapshot{Distribution: tt.distribution})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBarSeries(t *testing.T) {
	snap := model.Snapshot{Distribution: model.Distribution{model.CategoryRecyclable: 5}}

	bars := BarSeries(snap)
	require.Len(t, bars, 3)

	assert.Equal(t, model.CategoryBiodegradable, bars[0].Category)
	assert.Equal(t, 0, bars[0].Count)
	assert.Equal(t, model.CategoryRecyclable, bars[1].Category)
	assert.Equal(t, 5, bars[1].Count)
	assert.Equal(t, model.CategoryHazardous, bars[2].Category)
	assert.Equal(t, 0, bars[2].Count)

	assert.Equal(t, "Biodegradable", bars[0].Label)
	assert.Equal(t, model.ColorRed, bars[2].Color)

	empty := BarSeries(model.Snapshot{})
	require.Len(t, empty, 3, "zero bars are still rendered")
	for _, bar := range empty {
		assert.Zero(t, bar.Count)
	}
}

func TestLineSeries(t *testing.T) {
	snap := model.Snapshot{
		Daily: []model.DailyStatistic{
			day(t, "2026-10-14", 2, 1, 0, 3),
			day(t, "2026-10-12", 4, 2, 1, 8),
			{Date: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), Total: 0},
		},
	}

	points := LineSeries(snap)
	require.Len(t, points, 3)

	assert.Equal(t, "Oct 12", points[0].Label)
	assert.Equal(t, "Oct 13", points[1].Label)
	assert.Equal(t, "Oct 14", points[2].Label)

	assert.Equal(t, 4, points[0].Biodegradable)
	assert.Equal(t, 2, points[0].Recyclable)
	assert.Equal(t, 1, points[0].Hazardous)
	assert.Equal(t, 8, points[0].Total)

	assert.Zero(t, points[1].Biodegradable, "missing counts default to zero")
	assert.Zero(t, points[1].Count(model.CategoryHazardous))

	assert.Equal(t, points, LineSeries(snap), "repeated calls are deterministic")
	assert.Equal(t, "2026-10-14", snap.Daily[0].Date.Format(model.DateLayout), "the snapshot is not reordered")
}

func TestLineSeries_Empty(t *testing.T) {
	points := LineSeries(model.Snapshot{})
	require.NotNil(t, points)
	assert.Empty(t, points)
}

func TestComputeInsights(t *testing.T) {
	tests := []struct {
		name         string
		snap         model.Snapshot
		window       model.Window
		wantDominant model.Category
		wantShare    float64
		wantAverage  float64
		wantHas      bool
	}{
		{
			name: "biodegradable dominates",
			snap: model.Snapshot{
				Distribution: model.Distribution{
					model.CategoryBiodegradable: 6,
					model.CategoryRecyclable:    3,
					model.CategoryHazardous:     1,
				},
				TotalClassifications: 10,
			},
			window:       model.Window7,
			wantDominant: model.CategoryBiodegradable,
			wantShare:    60.0,
			wantAverage:  1.4,
			wantHas:      true,
		},
		{
			name: "tie goes to enumeration order",
			snap: model.Snapshot{
				Distribution: model.Distribution{
					model.CategoryHazardous:  4,
					model.CategoryRecyclable: 4,
				},
				TotalClassifications: 8,
			},
			window:       model.Window30,
			wantDominant: model.CategoryRecyclable,
			wantShare:    50.0,
			wantAverage:  0.3,
			wantHas:      true,
		},
		{
			name: "total includes unmapped categories",
			snap: model.Snapshot{
				Distribution:         model.Distribution{model.CategoryHazardous: 1},
				TotalClassifications: 3,
			},
			window:       model.Window90,
			wantDominant: model.CategoryHazardous,
			wantShare:    33.3,
			wantAverage:  0.0,
			wantHas:      true,
		},
		{
			name: "zero total avoids division by zero",
			snap: model.Snapshot{
				Distribution:         model.Distribution{model.CategoryRecyclable: 2},
				TotalClassifications: 0,
			},
			window:       model.Window7,
			wantDominant: model.CategoryRecyclable,
			wantShare:    0,
			wantAverage:  0,
			wantHas:      true,
		},
		{
			name:        "empty distribution",
			snap:        model.Snapshot{},
			window:      model.Window7,
			wantShare:   0,
			wantAverage: 0,
			wantHas:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeInsights(tt.snap, tt.window)
			assert.Equal(t, tt.wantHas, got.HasDominant)
			assert.Equal(t, tt.wantDominant, got.Dominant)
			assert.InDelta(t, tt.wantShare, got.SharePercent, 1e-9)
			assert.InDelta(t, tt.wantAverage, got.AveragePerDay, 1e-9)
			assert.Equal(t, tt.window, got.Window)
		})
	}
}

func TestDateCaption(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	snap := model.Snapshot{Range: model.NewDateRange(now, model.Window7)}
	assert.Equal(t, "Data shown for Oct 12 to Oct 19", DateCaption(snap))
}
