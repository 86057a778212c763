package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/dealflow/internal/cli"
	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/spf13/cobra"
)

func sortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sorts",
		Short: "List sort options",
		Long:  `Show the sort options and the --sort/--order flags that select each one.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := loadFilterConfig()
			if err != nil {
				return err
			}
			return writeSorts(cmd.OutOrStdout(), fc.DefaultSort, fc.DefaultOrder)
		},
	}
}

func writeSorts(out io.Writer, defaultField filter.SortField, defaultOrder filter.SortOrder) error {
	fmt.Fprintln(out, cli.FormatTitle("Sort options")) //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t\n",
		cli.TableHeaderStyle.Render("Option"),
		cli.TableHeaderStyle.Render("--sort"),
		cli.TableHeaderStyle.Render("--order"),
	); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	for _, opt := range filter.SortOptions() {
		marker := ""
		if opt.Field == defaultField && opt.Order == defaultOrder {
			marker = cli.SubtleStyle.Render("(default)")
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", opt.Label, opt.Field, opt.Order, marker); err != nil {
			return fmt.Errorf("failed to write sort row: %w", err)
		}
	}

	return w.Flush()
}
