package model

import (
	"testing"
	"time"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	for _, w := range Windows() {
		got, err := ParseWindow(w.Days())
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	_, err := ParseWindow(14)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	_, err = ParseWindow(0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	assert.Equal(t, "30d", Window30.String())
}

func TestNewDateRange(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		window    Window
		wantStart string
	}{
		{Window7, "2026-10-12"},
		{Window30, "2026-09-19"},
		{Window90, "2026-07-21"},
	}

	for _, tt := range tests {
		t.Run(tt.window.String(), func(t *testing.T) {
			r := NewDateRange(now, tt.window)
			assert.Equal(t, tt.wantStart, r.StartParam())
			assert.Equal(t, "2026-10-19", r.EndParam())
			assert.True(t, r.Valid())
		})
	}

	inverted := DateRange{Start: now, End: now.AddDate(0, 0, -1)}
	assert.False(t, inverted.Valid())
}

func TestDecodeSnapshot(t *testing.T) {
	requested := NewDateRange(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), Window7)
	body := []byte(`{
		"category_distribution": {"biodegradable": 6, "Recyclable": 3, "hazardous": 1, "e-waste": 4, "glass": 0},
		"date_range": {"start": "2026-10-12", "end": "2026-10-19"},
		"daily_statistics": [
			{"date": "2026-10-14", "biodegradable": 2, "recyclable": 1, "hazardous": null, "total": 3},
			{"date": "2026-10-12", "biodegradable": 4, "recyclable": 2, "hazardous": 1, "total": 7},
			{"date": "2026-10-13", "biodegradable": -1, "total": null}
		],
		"total_classifications": 14
	}`)

	snap, err := DecodeSnapshot(body, requested)
	require.NoError(t, err)

	assert.Equal(t, Distribution{
		CategoryBiodegradable: 6,
		CategoryRecyclable:    3,
		CategoryHazardous:     1,
	}, snap.Distribution, "unknown categories and zero counts are dropped")
	assert.Equal(t, 14, snap.TotalClassifications, "the server total is kept")
	assert.Equal(t, 10, snap.Distribution.Sum())

	require.Len(t, snap.Daily, 3)
	assert.Equal(t, "2026-10-12", snap.Daily[0].Date.Format(DateLayout))
	assert.Equal(t, "2026-10-13", snap.Daily[1].Date.Format(DateLayout))
	assert.Equal(t, "2026-10-14", snap.Daily[2].Date.Format(DateLayout))

	assert.Zero(t, snap.Daily[1].Count(CategoryBiodegradable), "negative counts clamp to zero")
	assert.Zero(t, snap.Daily[1].Total)
	assert.Zero(t, snap.Daily[2].Count(CategoryHazardous), "null counts read as zero")
	assert.Equal(t, 3, snap.Daily[2].Total)
	assert.False(t, snap.IsEmpty())
}

func TestDecodeSnapshot_DailyTotalCoversCounts(t *testing.T) {
	body := []byte(`{"daily_statistics": [{"date": "2026-10-18", "biodegradable": 2, "recyclable": 2, "hazardous": 1, "total": 1}]}`)

	snap, err := DecodeSnapshot(body, DateRange{})
	require.NoError(t, err)
	require.Len(t, snap.Daily, 1)
	assert.Equal(t, 5, snap.Daily[0].Total)
}

func TestDecodeSnapshot_RangeFallback(t *testing.T) {
	requested := NewDateRange(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), Window30)

	tests := []struct {
		name string
		body string
	}{
		{"missing", `{}`},
		{"malformed", `{"date_range": {"start": "10/01/2026", "end": "2026-10-19"}}`},
		{"inverted", `{"date_range": {"start": "2026-10-19", "end": "2026-10-01"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := DecodeSnapshot([]byte(tt.body), requested)
			require.NoError(t, err)
			assert.Equal(t, requested, snap.Range)
			assert.True(t, snap.IsEmpty())
			assert.NotNil(t, snap.Daily)
		})
	}
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`not json`), DateRange{})
	assert.Error(t, err)

	_, err = DecodeSnapshot([]byte(`{"daily_statistics": [{"date": "yesterday"}]}`), DateRange{})
	assert.Error(t, err)
}
