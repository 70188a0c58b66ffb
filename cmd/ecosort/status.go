package main

import (
	"fmt"

	"github.com/Veraticus/ecosort/internal/cli"
	"github.com/Veraticus/ecosort/internal/common"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that the classification service is reachable",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Print the service info as JSON")
	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	info, err := client.Info(cmd.Context())
	if err != nil {
		message := common.DisplayMessage(err, "Service unavailable")
		if writeErr := writeFailure(cmd.OutOrStdout(), asJSON, message); writeErr != nil {
			return writeErr
		}
		return fmt.Errorf("service at %s is not reachable: %w", cfg.BaseURL, err)
	}

	if asJSON {
		return cli.WriteJSON(cmd.OutOrStdout(), info)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderServiceInfo(info))
	return err
}
