// Package analytics fetches historical classification counts and reshapes
// them into chart series and derived insights.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/service"
)

// DefaultTimeout bounds a single analytics fetch.
const DefaultTimeout = 10 * time.Second

// FallbackMessage is shown when a failure carries no message of its own.
const FallbackMessage = "Failed to fetch analytics data"

// State is what the aggregator currently shows. Window is the most recently
// requested window; SnapshotWindow is the window Snapshot was loaded for and
// lags behind Window while a newer load is pending.
type State struct {
	Err            error
	Snapshot       *model.Snapshot
	Message        string
	Window         model.Window
	SnapshotWindow model.Window
	Token          uint64
	Loading   bool
	Empty     bool
	Retryable bool
}

// HasError reports whether the last committed load failed.
func (s State) HasError() bool {
	return s.Err != nil
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the clock used to compute date ranges.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithTimeout overrides the per-fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Aggregator) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// Aggregator loads analytics snapshots. Loads may overlap; each takes a
// monotonically increasing token and only the response for the latest token
// is committed, regardless of arrival order.
type Aggregator struct {
	fetcher service.AnalyticsFetcher
	now     func() time.Time
	state   State
	timeout time.Duration
	latest  uint64
	mu      sync.Mutex
}

// NewAggregator creates an aggregator backed by fetcher.
func NewAggregator(fetcher service.AnalyticsFetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		now:     time.Now,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current state.
func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Load fetches analytics for the last window days. A superseded load returns
// nil without touching the state. An empty snapshot is committed and reported
// as common.ErrEmptyResult.
func (a *Aggregator) Load(ctx context.Context, window model.Window) error {
	if _, err := model.ParseWindow(window.Days()); err != nil {
		return err
	}

	a.mu.Lock()
	a.latest++
	token := a.latest
	dateRange := model.NewDateRange(a.now(), window)
	a.state.Window = window
	a.state.Token = token
	a.state.Loading = true
	a.mu.Unlock()

	slog.Debug("Loading analytics",
		"window", window,
		"start_date", dateRange.StartParam(),
		"end_date", dateRange.EndParam(),
		"token", token)

	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	snap, err := a.fetcher.GetAnalytics(fetchCtx, dateRange)
	if err != nil && errors.Is(fetchCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, common.ErrNetwork) {
		err = common.NewNetworkError(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if token != a.latest {
		slog.Debug("Discarding superseded analytics response", "token", token, "latest", a.latest)
		return nil
	}

	a.state.Loading = false

	if err != nil {
		a.state.Err = err
		a.state.Message = common.DisplayMessage(err, FallbackMessage)
		a.state.Retryable = common.IsRetryable(err)
		a.state.Snapshot = nil
		a.state.SnapshotWindow = 0
		a.state.Empty = false
		return fmt.Errorf("failed to load analytics: %w", err)
	}

	a.state.Err = nil
	a.state.Message = ""
	a.state.Retryable = false
	a.state.Snapshot = &snap
	a.state.SnapshotWindow = window
	a.state.Empty = snap.IsEmpty()

	if a.state.Empty {
		return common.ErrEmptyResult
	}

	slog.Debug("Analytics loaded",
		"window", window,
		"total", snap.TotalClassifications,
		"days", len(snap.Daily))
	return nil
}

// Retry reloads the most recently requested window.
func (a *Aggregator) Retry(ctx context.Context) error {
	a.mu.Lock()
	window := a.state.Window
	a.mu.Unlock()

	if window == 0 {
		return fmt.Errorf("%w: no analytics window requested yet", common.ErrNotReady)
	}
	return a.Load(ctx, window)
}
