package main

import (
	"fmt"

	"github.com/Veraticus/ecosort/internal/cli"
	"github.com/Veraticus/ecosort/internal/common"
	"github.com/Veraticus/ecosort/internal/model"
	"github.com/spf13/cobra"
)

func tipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "tips <category>",
		Short:     "Show disposal tips for a category",
		Example:   "  ecosort tips hazardous",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.CategoryBiodegradable), string(model.CategoryRecyclable), string(model.CategoryHazardous)},
		RunE:      runTips,
	}
	cmd.Flags().Bool("json", false, "Print the tips as JSON")
	return cmd
}

func runTips(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	category := model.ParseCategory(args[0])
	if !category.IsKnown() {
		return fmt.Errorf("%w: unknown category %q", common.ErrInvalidInput, args[0])
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	tips, err := client.GetTips(cmd.Context(), category)
	if err != nil {
		message := common.DisplayMessage(err, "Could not load disposal tips")
		if writeErr := writeFailure(cmd.OutOrStdout(), asJSON, message); writeErr != nil {
			return writeErr
		}
		return fmt.Errorf("failed to get tips: %w", err)
	}

	if asJSON {
		return cli.WriteJSON(cmd.OutOrStdout(), tips)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTips(tips))
	return err
}
