package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Veraticus/ecosort/internal/common"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Window is an analytics lookback window in days.
type Window int

// Supported lookback windows.
const (
	Window7  Window = 7
	Window30 Window = 30
	Window90 Window = 90
)

// Windows returns the supported windows in ascending order.
func Windows() []Window {
	return []Window{Window7, Window30, Window90}
}

// ParseWindow validates a window given in days.
func ParseWindow(days int) (Window, error) {
	switch Window(days) {
	case Window7, Window30, Window90:
		return Window(days), nil
	}
	return 0, fmt.Errorf("%w: window must be 7, 30 or 90 days, got %d", common.ErrInvalidInput, days)
}

// Days returns the window length.
func (w Window) Days() int {
	return int(w)
}

func (w Window) String() string {
	return strconv.Itoa(int(w)) + "d"
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange returns [now - window days, now] truncated to calendar dates.
func NewDateRange(now time.Time, window Window) DateRange {
	end := truncateDate(now)
	return DateRange{
		Start: end.AddDate(0, 0, -window.Days()),
		End:   end,
	}
}

// Valid reports whether Start is not after End.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// StartParam formats the start date for query strings.
func (r DateRange) StartParam() string { return r.Start.Format(DateLayout) }

// EndParam formats the end date for query strings.
func (r DateRange) EndParam() string { return r.End.Format(DateLayout) }

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Distribution maps categories to non-negative counts. A missing key means 0.
type Distribution map[Category]int

// Count returns the count for c, or 0.
func (d Distribution) Count(c Category) int {
	return d[c]
}

// Sum returns the sum of all counts.
func (d Distribution) Sum() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// DailyStatistic is one row of the per-day table.
type DailyStatistic struct {
	Date   time.Time
	Counts map[Category]int
	Total  int
}

// Count returns the count for c on this day, or 0.
func (d DailyStatistic) Count(c Category) int {
	return d.Counts[c]
}

// Snapshot is an immutable analytics result for one date range.
type Snapshot struct {
	Range                DateRange
	Distribution         Distribution
	Daily                []DailyStatistic
	TotalClassifications int
}

// IsEmpty reports whether the snapshot carries no data at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.Distribution) == 0 && len(s.Daily) == 0
}

// analyticsPayload mirrors the GET /analytics response body.
type analyticsPayload struct {
	CategoryDistribution map[string]int `json:"category_distribution"`
	DateRange            struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"date_range"`
	DailyStatistics []struct {
		Date          string `json:"date"`
		Biodegradable *int   `json:"biodegradable"`
		Recyclable    *int   `json:"recyclable"`
		Hazardous     *int   `json:"hazardous"`
		Total         *int   `json:"total"`
	} `json:"daily_statistics"`
	TotalClassifications int `json:"total_classifications"`
}

// DecodeSnapshot parses an analytics response body. Unknown categories and
// non-positive counts are dropped from the distribution, daily counts are
// clamped to zero and the daily rows are sorted ascending by date.
func DecodeSnapshot(body []byte, requested DateRange) (Snapshot, error) {
	var payload analyticsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode analytics response: %w", err)
	}

	snap := Snapshot{
		Range:                requested,
		Distribution:         make(Distribution),
		Daily:                make([]DailyStatistic, 0, len(payload.DailyStatistics)),
		TotalClassifications: max(payload.TotalClassifications, 0),
	}

	if start, err := time.Parse(DateLayout, payload.DateRange.Start); err == nil {
		if end, endErr := time.Parse(DateLayout, payload.DateRange.End); endErr == nil && !start.After(end) {
			snap.Range = DateRange{Start: start, End: end}
		}
	}

	for name, count := range payload.CategoryDistribution {
		cat := ParseCategory(name)
		if cat == CategoryUnknown || count <= 0 {
			continue
		}
		snap.Distribution[cat] += count
	}

	for _, row := range payload.DailyStatistics {
		date, err := time.Parse(DateLayout, row.Date)
		if err != nil {
			return Snapshot{}, fmt.Errorf("invalid daily statistic date %q: %w", row.Date, err)
		}
		counts := map[Category]int{
			CategoryBiodegradable: deref(row.Biodegradable),
			CategoryRecyclable:    deref(row.Recyclable),
			CategoryHazardous:     deref(row.Hazardous),
		}
		total := deref(row.Total)
		shown := counts[CategoryBiodegradable] + counts[CategoryRecyclable] + counts[CategoryHazardous]
		snap.Daily = append(snap.Daily, DailyStatistic{
			Date:   date,
			Counts: counts,
			Total:  max(total, shown),
		})
	}

	sort.SliceStable(snap.Daily, func(i, j int) bool {
		return snap.Daily[i].Date.Before(snap.Daily[j].Date)
	})

	return snap, nil
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return max(*n, 0)
}
