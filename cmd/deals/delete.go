package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/dealflow/internal/cli"
	"github.com/Veraticus/dealflow/internal/common"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete deals by id",
		Long: `Remove deals from the pipeline. Use 'deals list --show-closed --json' to
find the ids.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDelete,
	}
}

func runDelete(cmd *cobra.Command, ids []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	for _, id := range ids {
		deal, err := store.GetDeal(ctx, id)
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUserError(fmt.Sprintf("No deal with id %q", id), err)
		}
		if err != nil {
			return fmt.Errorf("failed to look up deal: %w", err)
		}

		if err := store.DeleteDeal(ctx, id); err != nil {
			return fmt.Errorf("failed to delete deal %s: %w", id, err)
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %s (%s)", orDash(deal.Name), id))) //nolint:forbidigo // User-facing output
	}

	remaining, err := store.CountDeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to count deals: %w", err)
	}
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d deals remaining", remaining))) //nolint:forbidigo // User-facing output
	return nil
}
