package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/dealflow/internal/cli"
	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/config"
	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/spf13/cobra"
)

type listOptions struct {
	search     string
	sort       string
	order      string
	stage      string
	statuses   []string
	showClosed bool
	asJSON     bool
}

func listCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals matching a filter",
		Long: `Print the deals that match the given filters, in the requested order.

Closed deals (won, lost, completed, canceled by default) are hidden unless
--show-closed is given.

Examples:
  # Everything still open, newest first
  deals list

  # Open Acme deals by value
  deals list --search acme --sort value

  # Waiting or in-progress deals in the Proposal stage
  deals list --status waiting --status in_progress --stage proposal`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "match deal or company names (case-insensitive)")
	cmd.Flags().StringSliceVar(&opts.statuses, "status", nil, "only show these statuses (repeatable)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort field (name, value, date, company)")
	cmd.Flags().StringVar(&opts.order, "order", "", "sort order (asc, desc)")
	cmd.Flags().StringVar(&opts.stage, "stage", "", "only show deals in this stage (id or name)")
	cmd.Flags().BoolVar(&opts.showClosed, "show-closed", false, "include closed deals")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print deals as JSON")

	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions) error {
	ctx := cmd.Context()

	fc, err := loadFilterConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	spec, err := buildSpec(ctx, store, fc, opts)
	if err != nil {
		return err
	}

	deals, err := store.ListDeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deals: %w", err)
	}
	stages, err := store.ListStages(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stages: %w", err)
	}

	visible := filter.NewEvaluator(fc.ClosedFunc()).Apply(deals, spec)
	common.LogDebug("Evaluated deal filter", common.Fields{
		"filter":  spec.String(),
		"total":   len(deals),
		"visible": len(visible),
	})

	if opts.asJSON {
		return writeDealsJSON(cmd.OutOrStdout(), visible, stages)
	}
	return writeDealTable(cmd.OutOrStdout(), visible, len(deals), stages, spec)
}

// buildSpec turns the list flags into a filter spec, starting from the
// configured defaults.
func buildSpec(ctx context.Context, stages stageResolver, fc config.FilterConfig, opts *listOptions) (filter.Spec, error) {
	spec := fc.InitialSpec().
		WithSearch(opts.search).
		WithHideClosed(!opts.showClosed)

	if len(opts.statuses) > 0 {
		statuses := make([]model.DealStatus, 0, len(opts.statuses))
		for _, raw := range opts.statuses {
			status := model.DealStatus(strings.ToLower(strings.TrimSpace(raw)))
			if status == "" {
				continue
			}
			if _, known := model.DefaultStatusCatalog().Lookup(status); !known {
				slog.Warn("Filtering on a status outside the catalog", "status", status)
			}
			statuses = append(statuses, status)
		}
		spec = spec.WithStatuses(statuses...)
	}

	if opts.sort != "" || opts.order != "" {
		field := spec.SortBy()
		if opts.sort != "" {
			parsed, err := filter.ParseSortField(opts.sort)
			if err != nil {
				return filter.Spec{}, common.NewUserError(fmt.Sprintf("Invalid --sort %q: use name, value, date or company", opts.sort), err)
			}
			field = parsed
		}

		order := naturalOrder(field)
		if opts.order != "" {
			parsed, err := filter.ParseSortOrder(opts.order)
			if err != nil {
				return filter.Spec{}, common.NewUserError(fmt.Sprintf("Invalid --order %q: use asc or desc", opts.order), err)
			}
			order = parsed
		} else if opts.sort == "" {
			order = spec.SortOrder()
		}
		spec = spec.WithSort(field, order)
	}

	if opts.stage != "" {
		id, err := resolveStage(ctx, stages, opts.stage)
		if err != nil {
			return filter.Spec{}, err
		}
		spec = spec.WithStage(id)
	}

	return spec, nil
}

// naturalOrder is the direction used when --sort is given without --order:
// text fields read A-Z, values and dates lead with the largest.
func naturalOrder(field filter.SortField) filter.SortOrder {
	switch field {
	case filter.SortByName, filter.SortByCompany:
		return filter.Ascending
	default:
		return filter.Descending
	}
}

type stageResolver interface {
	GetStageByName(ctx context.Context, name string) (*model.Stage, error)
}

func resolveStage(ctx context.Context, stages stageResolver, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.Atoi(raw); err == nil {
		if id <= 0 {
			return 0, common.NewUserError(fmt.Sprintf("Invalid --stage %q: stage ids start at 1", raw), nil)
		}
		return id, nil
	}

	stage, err := stages.GetStageByName(ctx, raw)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, common.NewUserError(fmt.Sprintf("Unknown stage %q", raw), err)
		}
		return 0, fmt.Errorf("failed to look up stage: %w", err)
	}
	return stage.ID, nil
}

func stageNames(stages []model.Stage) map[int]string {
	names := make(map[int]string, len(stages))
	for _, s := range stages {
		names[s.ID] = s.Name
	}
	return names
}

func stageLabel(names map[int]string, id int) string {
	if id == 0 {
		return "—"
	}
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func writeDealTable(out io.Writer, deals []model.Deal, total int, stages []model.Stage, spec filter.Spec) error {
	title := cli.FormatTitle(fmt.Sprintf("Deals  %d of %d", len(deals), total))
	if badge := cli.FilterCountBadge(spec.ActiveFilterCount()); badge != "" {
		title += " " + badge
	}
	fmt.Fprintln(out, title) //nolint:forbidigo // User-facing output

	if total == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No deals yet. Use 'deals import' to add some.")) //nolint:forbidigo // User-facing output
		return nil
	}
	if len(deals) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No deals match the current filters.")) //nolint:forbidigo // User-facing output
		return nil
	}

	catalog := model.DefaultStatusCatalog()
	names := stageNames(stages)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Deal"),
		cli.TableHeaderStyle.Render("Company"),
		cli.TableHeaderStyle.Render("Value"),
		cli.TableHeaderStyle.Render("Status"),
		cli.TableHeaderStyle.Render("Stage"),
		cli.TableHeaderStyle.Render("Created"),
	); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	for _, d := range deals {
		info, _ := catalog.Lookup(d.Status)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			cli.SubtleStyle.Render(d.ID),
			orDash(d.Name),
			orDash(d.Company),
			cli.FormatValue(d),
			info.Label,
			stageLabel(names, d.StageID),
			cli.FormatDate(d),
		); err != nil {
			return fmt.Errorf("failed to write deal row: %w", err)
		}
	}

	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

type dealJSON struct {
	Value     *float64   `json:"value,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Company   string     `json:"company"`
	Status    string     `json:"status"`
	Stage     string     `json:"stage,omitempty"`
	StageID   int        `json:"stage_id,omitempty"`
}

func writeDealsJSON(out io.Writer, deals []model.Deal, stages []model.Stage) error {
	names := stageNames(stages)
	payload := make([]dealJSON, len(deals))
	for i, d := range deals {
		payload[i] = dealJSON{
			ID:      d.ID,
			Name:    d.Name,
			Company: d.Company,
			Status:  string(d.Status),
			StageID: d.StageID,
			Stage:   names[d.StageID],
		}
		if d.HasValue() {
			v := d.Value
			payload[i].Value = &v
		}
		if d.HasCreatedAt() {
			t := d.CreatedAt
			payload[i].CreatedAt = &t
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode deals: %w", err)
	}
	return nil
}
