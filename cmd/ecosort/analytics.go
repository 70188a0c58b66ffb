package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/ecosort/internal/analytics"
	"github.com/Veraticus/ecosort/internal/cli"
	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/config"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/Veraticus/ecosort/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show what has been classified recently",
		Long: `Show classification statistics for the last 7, 30 or 90 days: totals per
category, the distribution, a daily breakdown and a short summary.

Examples:
  ecosort analytics                # Last 7 days
  ecosort analytics --window 90    # Last 90 days
  ecosort analytics --json         # Machine readable report`,
		RunE: runAnalytics,
	}

	cmd.Flags().IntP("window", "w", int(model.Window7), "Days to include (7, 30 or 90)")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	cmd.Flags().Duration("analytics-timeout", 0, "Give up on the analytics request after this long (default: 10s)")
	_ = viper.BindPFlag(config.KeyAnalyticsTimeout, cmd.Flags().Lookup("analytics-timeout"))

	return cmd
}

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive analytics dashboard",
		RunE:  runDashboard,
	}

	cmd.Flags().IntP("window", "w", int(model.Window7), "Initial window in days (7, 30 or 90)")
	cmd.Flags().String("theme", "", "Dashboard theme (default, mono)")

	return cmd
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	days, _ := cmd.Flags().GetInt("window")

	window, err := model.ParseWindow(days)
	if err != nil {
		return err
	}

	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	agg := analytics.NewAggregator(client, analytics.WithTimeout(cfg.AnalyticsTimeout))

	stop := startSpinner(cmd.ErrOrStderr(), asJSON, "Loading analytics...")
	err = agg.Load(cmd.Context(), window)
	stop()

	state := agg.State()
	out := cmd.OutOrStdout()

	if err != nil && !errors.Is(err, common.ErrEmptyResult) {
		if writeErr := writeFailure(out, asJSON, state.Message); writeErr != nil {
			return writeErr
		}
		return fmt.Errorf("failed to load analytics: %w", err)
	}
	if state.Snapshot == nil {
		return fmt.Errorf("failed to load analytics: %w", common.ErrNotReady)
	}

	if asJSON {
		return cli.WriteJSON(out, cli.NewAnalyticsReport(*state.Snapshot, window))
	}
	_, err = fmt.Fprintln(out, cli.RenderAnalytics(*state.Snapshot, window))
	return err
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	days, _ := cmd.Flags().GetInt("window")
	window, err := model.ParseWindow(days)
	if err != nil {
		return err
	}

	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	agg := analytics.NewAggregator(client, analytics.WithTimeout(cfg.AnalyticsTimeout))
	return tui.RunDashboard(cmd.Context(), agg,
		tui.WithWindow(window),
		tui.WithTheme(selectedTheme(cmd)))
}
