package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/ecosort/internal/analytics"
	"github.com/Veraticus/ecosort/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// RunClassifier runs the interactive text classifier until the user quits or
// ctx is canceled.
func RunClassifier(ctx context.Context, sess *session.Session, opts ...Option) error {
	if sess == nil {
		return fmt.Errorf("session is required")
	}
	return run(ctx, NewClassifierModel(ctx, sess, opts...))
}

// RunDashboard runs the analytics dashboard until the user quits or ctx is
// canceled.
func RunDashboard(ctx context.Context, agg *analytics.Aggregator, opts ...Option) error {
	if agg == nil {
		return fmt.Errorf("aggregator is required")
	}
	return run(ctx, NewDashboardModel(ctx, agg, opts...))
}

func run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
