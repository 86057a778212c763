package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/dealflow/internal/cli"
	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/spf13/cobra"
)

func statusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List deal statuses",
		Long: `Show the statuses deals can carry and whether each counts as closed.

Closed deals are hidden from views unless you ask for them. The closed set
comes from filters.closed_statuses in the config file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := loadFilterConfig()
			if err != nil {
				return err
			}
			return writeStatuses(cmd.OutOrStdout(), model.DefaultStatusCatalog(), fc.ClosedFunc())
		},
	}
}

func writeStatuses(out io.Writer, catalog model.StatusCatalog, isClosed filter.ClosedFunc) error {
	fmt.Fprintln(out, cli.FormatTitle("Deal statuses")) //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Value"),
		cli.TableHeaderStyle.Render("Label"),
		cli.TableHeaderStyle.Render("Closed"),
	); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	for _, info := range catalog {
		closed := "no"
		if isClosed(info.Value) {
			closed = "yes"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", info.Value, info.Label, closed); err != nil {
			return fmt.Errorf("failed to write status row: %w", err)
		}
	}

	return w.Flush()
}
