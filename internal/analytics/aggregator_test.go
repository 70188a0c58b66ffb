package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)

type fetchCall struct {
	ctx       context.Context
	reply     chan fetchReply
	dateRange model.DateRange
}

type fetchReply struct {
	err  error
	snap model.Snapshot
}

// scriptedFetcher hands every call to the test through calls, so the test
// decides when and in which order responses arrive.
type scriptedFetcher struct {
	calls chan fetchCall
}

func newScriptedFetcher() *scriptedFetcher {
	return &scriptedFetcher{calls: make(chan fetchCall, 8)}
}

func (f *scriptedFetcher) GetAnalytics(ctx context.Context, dateRange model.DateRange) (model.Snapshot, error) {
	call := fetchCall{ctx: ctx, dateRange: dateRange, reply: make(chan fetchReply, 1)}
	f.calls <- call
	select {
	case r := <-call.reply:
		return r.snap, r.err
	case <-ctx.Done():
		return model.Snapshot{}, ctx.Err()
	}
}

// staticFetcher answers immediately.
type staticFetcher struct {
	err   error
	snap  model.Snapshot
	last  model.DateRange
	calls int
	mu    sync.Mutex
}

func (f *staticFetcher) GetAnalytics(_ context.Context, dateRange model.DateRange) (model.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = dateRange
	return f.snap, f.err
}

func snapshotWithTotal(total int) model.Snapshot {
	return model.Snapshot{
		Distribution:         model.Distribution{model.CategoryRecyclable: total},
		TotalClassifications: total,
	}
}

func newTestAggregator(fetcher interface {
	GetAnalytics(context.Context, model.DateRange) (model.Snapshot, error)
}, opts ...Option) *Aggregator {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewAggregator(fetcher, opts...)
}

func TestAggregator_Load(t *testing.T) {
	fetcher := &staticFetcher{snap: snapshotWithTotal(12)}
	agg := newTestAggregator(fetcher)

	require.NoError(t, agg.Load(context.Background(), model.Window30))

	assert.Equal(t, "2026-09-19", fetcher.last.StartParam())
	assert.Equal(t, "2026-10-19", fetcher.last.EndParam())
	assert.True(t, fetcher.last.Valid())

	state := agg.State()
	assert.False(t, state.Loading)
	assert.False(t, state.HasError())
	assert.False(t, state.Empty)
	assert.Equal(t, model.Window30, state.Window)
	require.NotNil(t, state.Snapshot)
	assert.Equal(t, 12, state.Snapshot.TotalClassifications)
}

func TestAggregator_Load_RejectsUnsupportedWindow(t *testing.T) {
	fetcher := &staticFetcher{}
	agg := newTestAggregator(fetcher)

	err := agg.Load(context.Background(), model.Window(14))
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Zero(t, fetcher.calls)
}

func TestAggregator_LatestTokenWins(t *testing.T) {
	fetcher := newScriptedFetcher()
	agg := newTestAggregator(fetcher)

	errs := make(chan error, 2)
	go func() { errs <- agg.Load(context.Background(), model.Window7) }()
	first := <-fetcher.calls

	go func() { errs <- agg.Load(context.Background(), model.Window30) }()
	second := <-fetcher.calls

	assert.True(t, agg.State().Loading)

	// The 30 day response arrives first, then the stale 7 day response.
	second.reply <- fetchReply{snap: snapshotWithTotal(30)}
	require.NoError(t, <-errs)

	first.reply <- fetchReply{snap: snapshotWithTotal(7)}
	require.NoError(t, <-errs, "stale responses are discarded silently")

	state := agg.State()
	assert.Equal(t, model.Window30, state.Window)
	require.NotNil(t, state.Snapshot)
	assert.Equal(t, 30, state.Snapshot.TotalClassifications)
	assert.False(t, state.Loading)
}

func TestAggregator_LatestTokenWins_InOrderArrival(t *testing.T) {
	fetcher := newScriptedFetcher()
	agg := newTestAggregator(fetcher)

	errs := make(chan error, 2)
	go func() { errs <- agg.Load(context.Background(), model.Window7) }()
	first := <-fetcher.calls
	go func() { errs <- agg.Load(context.Background(), model.Window90) }()
	second := <-fetcher.calls

	first.reply <- fetchReply{snap: snapshotWithTotal(7)}
	require.NoError(t, <-errs)
	assert.True(t, agg.State().Loading, "the superseded response does not end loading")
	assert.Nil(t, agg.State().Snapshot)

	second.reply <- fetchReply{snap: snapshotWithTotal(90)}
	require.NoError(t, <-errs)
	assert.Equal(t, 90, agg.State().Snapshot.TotalClassifications)
}

func TestAggregator_SnapshotWindowLagsPendingLoad(t *testing.T) {
	fetcher := newScriptedFetcher()
	agg := newTestAggregator(fetcher)

	errs := make(chan error, 2)
	go func() { errs <- agg.Load(context.Background(), model.Window7) }()
	(<-fetcher.calls).reply <- fetchReply{snap: snapshotWithTotal(70)}
	require.NoError(t, <-errs)

	go func() { errs <- agg.Load(context.Background(), model.Window30) }()
	pending := <-fetcher.calls

	state := agg.State()
	assert.True(t, state.Loading)
	assert.Equal(t, model.Window30, state.Window)
	assert.Equal(t, model.Window7, state.SnapshotWindow)
	require.NotNil(t, state.Snapshot)
	insights := ComputeInsights(*state.Snapshot, state.SnapshotWindow)
	assert.InDelta(t, 10.0, insights.AveragePerDay, 0.001)
	assert.Equal(t, model.Window7, insights.Window)

	pending.reply <- fetchReply{snap: snapshotWithTotal(60)}
	require.NoError(t, <-errs)
	assert.Equal(t, model.Window30, agg.State().SnapshotWindow)
}

func TestAggregator_FailureClearsSnapshotWindow(t *testing.T) {
	fetcher := &staticFetcher{snap: snapshotWithTotal(5)}
	agg := newTestAggregator(fetcher)
	require.NoError(t, agg.Load(context.Background(), model.Window7))
	assert.Equal(t, model.Window7, agg.State().SnapshotWindow)

	fetcher.mu.Lock()
	fetcher.err = &common.ServerError{StatusCode: 500, Message: "Database unavailable"}
	fetcher.mu.Unlock()
	require.Error(t, agg.Load(context.Background(), model.Window90))

	state := agg.State()
	assert.Nil(t, state.Snapshot)
	assert.Zero(t, state.SnapshotWindow)
	assert.Equal(t, model.Window90, state.Window)
}

func TestAggregator_StaleErrorDoesNotOverwrite(t *testing.T) {
	fetcher := newScriptedFetcher()
	agg := newTestAggregator(fetcher)

	errs := make(chan error, 2)
	go func() { errs <- agg.Load(context.Background(), model.Window7) }()
	first := <-fetcher.calls
	go func() { errs <- agg.Load(context.Background(), model.Window30) }()
	second := <-fetcher.calls

	second.reply <- fetchReply{snap: snapshotWithTotal(30)}
	require.NoError(t, <-errs)

	first.reply <- fetchReply{err: &common.ServerError{StatusCode: 500, Message: "boom"}}
	require.NoError(t, <-errs)

	state := agg.State()
	assert.False(t, state.HasError())
	assert.Equal(t, 30, state.Snapshot.TotalClassifications)
}

func TestAggregator_Errors(t *testing.T) {
	tests := []struct {
		err           error
		name          string
		wantMessage   string
		wantSentinel  error
		wantRetryable bool
	}{
		{
			name:         "server message kept verbatim",
			err:          &common.ServerError{StatusCode: 400, Message: "Invalid date format. Use YYYY-MM-DD"},
			wantMessage:  "Invalid date format. Use YYYY-MM-DD",
			wantSentinel: common.ErrServer,
		},
		{
			name:         "server error without message",
			err:          &common.ServerError{StatusCode: 502},
			wantMessage:  FallbackMessage,
			wantSentinel: common.ErrServer,
		},
		{
			name:          "network failure",
			err:           common.NewNetworkError(errors.New("connection refused")),
			wantMessage:   "network error: connection refused",
			wantSentinel:  common.ErrNetwork,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &staticFetcher{snap: snapshotWithTotal(4)}
			agg := newTestAggregator(fetcher)
			require.NoError(t, agg.Load(context.Background(), model.Window7))

			fetcher.err = tt.err
			err := agg.Load(context.Background(), model.Window7)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantSentinel)

			state := agg.State()
			assert.True(t, state.HasError())
			assert.Equal(t, tt.wantMessage, state.Message)
			assert.Equal(t, tt.wantRetryable, state.Retryable)
			assert.Nil(t, state.Snapshot)
			assert.False(t, state.Loading)
		})
	}
}

func TestAggregator_Timeout(t *testing.T) {
	fetcher := newScriptedFetcher()
	agg := newTestAggregator(fetcher, WithTimeout(20*time.Millisecond))

	errs := make(chan error, 1)
	go func() { errs <- agg.Load(context.Background(), model.Window7) }()

	call := <-fetcher.calls
	deadline, ok := call.ctx.Deadline()
	require.True(t, ok, "fetches are bounded by a deadline")
	assert.WithinDuration(t, time.Now().Add(20*time.Millisecond), deadline, time.Second)

	err := <-errs
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetwork)
	assert.True(t, agg.State().Retryable)
}

func TestAggregator_DefaultTimeout(t *testing.T) {
	agg := NewAggregator(&staticFetcher{})
	assert.Equal(t, 10*time.Second, agg.timeout)
}

func TestAggregator_EmptyResult(t *testing.T) {
	fetcher := &staticFetcher{snap: model.Snapshot{Distribution: model.Distribution{}}}
	agg := newTestAggregator(fetcher)

	err := agg.Load(context.Background(), model.Window90)
	require.ErrorIs(t, err, common.ErrEmptyResult)

	state := agg.State()
	assert.True(t, state.Empty)
	assert.False(t, state.HasError(), "an empty result is not an error state")
	require.NotNil(t, state.Snapshot)
	assert.Empty(t, LineSeries(*state.Snapshot))
	assert.Empty(t, PieSeries(*state.Snapshot))
	assert.Len(t, BarSeries(*state.Snapshot), 3)
}

func TestAggregator_Retry(t *testing.T) {
	fetcher := &staticFetcher{err: common.NewNetworkError(errors.New("timeout"))}
	agg := newTestAggregator(fetcher)

	require.ErrorIs(t, agg.Retry(context.Background()), common.ErrNotReady)

	require.Error(t, agg.Load(context.Background(), model.Window30))
	require.True(t, agg.State().HasError())

	fetcher.err = nil
	fetcher.snap = snapshotWithTotal(9)
	require.NoError(t, agg.Retry(context.Background()))

	state := agg.State()
	assert.False(t, state.HasError())
	assert.Empty(t, state.Message)
	assert.Equal(t, model.Window30, state.Window)
	assert.Equal(t, 2, fetcher.calls)
}
