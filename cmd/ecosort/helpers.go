package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/ecosort/internal/api"
	"github.com/Veraticus/ecosort/internal/cli"
	"github.com/Veraticus/ecosort/internal/config"
	"github.com/Veraticus/ecosort/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errorReport is the JSON shape of a failure when --json is set.
type errorReport struct {
	Error string `json:"error"`
}

// newClient builds the service client from the loaded configuration.
func newClient() (*api.Client, *config.APIConfig, error) {
	cfg, err := config.LoadAPIConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	client, err := api.NewClient(api.Config{
		BaseURL:      cfg.BaseURL,
		Timeout:      cfg.Timeout,
		TipsCacheTTL: cfg.TipsCacheTTL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	slog.Debug("Using classification service", "url", cfg.BaseURL, "timeout", cfg.Timeout)
	return client, cfg, nil
}

// startSpinner starts a pending indicator unless output is machine readable.
func startSpinner(w io.Writer, asJSON bool, description string) func() {
	if asJSON {
		return func() {}
	}
	s := cli.StartSpinner(w, description)
	return s.Stop
}

// writeFailure reports message on w in the selected format.
func writeFailure(w io.Writer, asJSON bool, message string) error {
	if asJSON {
		return cli.WriteJSON(w, errorReport{Error: message})
	}
	_, err := fmt.Fprintln(w, cli.FormatError(message))
	return err
}

// selectedTheme returns the theme named by --theme, or by ui.theme in the
// config when the flag is not given.
func selectedTheme(cmd *cobra.Command) themes.Theme {
	name := viper.GetString("ui.theme")
	if flag := cmd.Flags().Lookup("theme"); flag != nil && flag.Changed {
		name = flag.Value.String()
	}
	return themes.GetTheme(name)
}
