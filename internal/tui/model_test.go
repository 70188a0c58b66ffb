package tui

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/ecosort/internal/analytics"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/session"
	"github.com/Veraticus/ecosort/internal/tui/components"
	"github.com/Veraticus/ecosort/internal/tui/tuitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopClassifier struct{}

func (nopClassifier) ClassifyText(context.Context, string) (model.Result, error) {
	return model.Result{Category: model.CategoryRecyclable}, nil
}

func (nopClassifier) ClassifyImage(context.Context, model.Image) (model.Result, error) {
	return model.Result{Category: model.CategoryRecyclable}, nil
}

type nopFetcher struct{}

func (nopFetcher) GetAnalytics(context.Context, model.DateRange) (model.Snapshot, error) {
	return model.Snapshot{}, nil
}

func TestClassifierModel_QuitKeys(t *testing.T) {
	m := NewClassifierModel(context.Background(), session.New(nopClassifier{}))

	updated, cmd := m.Update(tuitest.KeyPress("q"))
	assert.False(t, tuitest.IsQuit(cmd), "q is typed into the description")
	assert.Contains(t, updated.View(), "q")

	updated, cmd = updated.Update(tuitest.KeyCtrlC())
	assert.True(t, tuitest.IsQuit(cmd))
	assert.Empty(t, updated.View())
}

func TestDashboardModel_QuitAndHelp(t *testing.T) {
	agg := analytics.NewAggregator(nopFetcher{})
	m := NewDashboardModel(context.Background(), agg, WithWindow(model.Window30))

	assert.Contains(t, m.View(), "30 days")

	updated, cmd := m.Update(tuitest.KeyPress("?"))
	assert.Nil(t, cmd)
	require.IsType(t, Model{}, updated)
	assert.True(t, updated.(Model).help.ShowAll)

	updated, _ = updated.Update(components.ShowHelpMsg{})
	assert.False(t, updated.(Model).help.ShowAll)

	_, cmd = updated.Update(tuitest.KeyPress("q"))
	assert.True(t, tuitest.IsQuit(cmd))
}

func TestDashboardModel_DelegatesWindowKeys(t *testing.T) {
	agg := analytics.NewAggregator(nopFetcher{}, analytics.WithClock(func() time.Time {
		return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	}))
	m := NewDashboardModel(context.Background(), agg)

	updated, cmd := m.Update(tuitest.KeyPress("3"))
	require.NotNil(t, cmd)
	assert.Equal(t, model.Window90, updated.(Model).dashboard.Window())
}

func TestOptions(t *testing.T) {
	cfg := applyOptions([]Option{
		WithSize(120, 40),
		WithExamples([]string{"glass jar"}),
		WithHelp(false),
	})
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
	assert.Equal(t, []string{"glass jar"}, cfg.Examples)
	assert.False(t, cfg.ShowHelp)
	assert.Equal(t, model.Window7, cfg.Window)
	assert.Equal(t, DefaultExamples, defaultConfig().Examples)
}

func TestRun_RequiresDependencies(t *testing.T) {
	assert.Error(t, RunClassifier(context.Background(), nil))
	assert.Error(t, RunDashboard(context.Background(), nil))
}
