package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Veraticus/dealflow/internal/cli"
	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/spf13/cobra"
)

func stagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "Manage pipeline stages",
		Long: `List the pipeline stages, or add and rename them.

Stages can be given to 'deals list --stage' by id or by name.`,
		RunE: runStagesList,
	}

	cmd.AddCommand(stagesAddCmd())
	cmd.AddCommand(stagesRenameCmd())

	return cmd
}

func stagesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a pipeline stage",
		Args:  cobra.ExactArgs(1),
		RunE:  runStagesAdd,
	}

	cmd.Flags().Int("position", 0, "position in the pipeline (default: after the last stage)")

	return cmd
}

func stagesRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename NAME NEW_NAME",
		Short: "Rename a pipeline stage",
		Args:  cobra.ExactArgs(2),
		RunE:  runStagesRename,
	}
}

func runStagesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	stages, err := store.ListStages(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stages: %w", err)
	}
	return writeStages(cmd.OutOrStdout(), stages)
}

func runStagesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	position, _ := cmd.Flags().GetInt("position")
	if !cmd.Flags().Changed("position") {
		stages, err := store.ListStages(ctx)
		if err != nil {
			return fmt.Errorf("failed to load stages: %w", err)
		}
		for _, s := range stages {
			position = max(position, s.Position+1)
		}
	}

	stage := &model.Stage{Name: args[0], Position: position}
	if err := store.SaveStage(ctx, stage); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return common.NewUserError(fmt.Sprintf("Stage %q already exists", args[0]), err)
		}
		return fmt.Errorf("failed to add stage: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added stage %s (id %d)", stage.Name, stage.ID))) //nolint:forbidigo // User-facing output
	return nil
}

func runStagesRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	stage, err := store.GetStageByName(ctx, args[0])
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("Unknown stage %q", args[0]), err)
	}
	if err != nil {
		return fmt.Errorf("failed to look up stage: %w", err)
	}

	oldName := stage.Name
	stage.Name = args[1]
	if err := store.SaveStage(ctx, stage); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return common.NewUserError(fmt.Sprintf("Stage %q already exists", args[1]), err)
		}
		return fmt.Errorf("failed to rename stage: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Renamed stage %s to %s", oldName, stage.Name))) //nolint:forbidigo // User-facing output
	return nil
}

func writeStages(out io.Writer, stages []model.Stage) error {
	fmt.Fprintln(out, cli.FormatTitle("Pipeline stages")) //nolint:forbidigo // User-facing output

	if len(stages) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No stages yet. Use 'deals stages add' to create one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Name"),
		cli.TableHeaderStyle.Render("Position"),
	); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	for _, s := range stages {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\n", s.ID, s.Name, s.Position); err != nil {
			return fmt.Errorf("failed to write stage row: %w", err)
		}
	}

	return w.Flush()
}
