package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/dealflow/internal/cli"
	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/importer"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const defaultBatchSize = 100

// ErrNoFiles is returned when no import arguments resolve to a file.
var ErrNoFiles = errors.New("no files found to import")

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import deals from YAML or CSV files",
		Long: `Import deals from YAML (.yaml, .yml) or CSV (.csv) files.

YAML files hold a top-level "deals" list. CSV files need a header row with at
least name and status columns; company, value, created_at, stage_id and id are
optional. Deals without an id get a generated one. Importing a deal whose id
already exists updates it in place.

Examples:
  # Import a single export
  deals import ~/Downloads/pipeline.csv

  # Import every YAML file in a directory
  deals import ~/deals/*.yaml

  # Check a file without saving anything
  deals import --dry-run pipeline.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "parse files without saving")
	cmd.Flags().Int("batch-size", defaultBatchSize, "deals saved per transaction")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	out := cmd.OutOrStdout()

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(out, "Import").
		WithResumeHint("Saved batches are kept. Run the same import again to finish.")
	ctx, cancel := handler.HandleInterrupts(cmd.Context())
	defer cancel()

	common.LogInfo("Importing deal files", common.Fields{
		"file_count": len(files),
		"dry_run":    dryRun,
	})

	deals, err := parseFiles(ctx, importer.NewParser(), files)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Found %d deals in %d files", len(deals), len(files)))) //nolint:forbidigo // User-facing output

	if dryRun {
		fmt.Fprintln(out, cli.FormatWarning("Dry run: nothing was saved")) //nolint:forbidigo // User-facing output
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	saved, err := saveInBatches(ctx, store, deals, batchSize, cmd.ErrOrStderr())
	if err != nil {
		if handler.WasInterrupted() {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Saved %d of %d deals before stopping", saved, len(deals)))) //nolint:forbidigo // User-facing output
		}
		return err
	}

	total, err := store.CountDeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to count deals: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d deals (%d in the pipeline)", saved, total))) //nolint:forbidigo // User-facing output
	return nil
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

// parseFiles parses every file and merges the results. A deal id seen in more
// than one place keeps its first position and its last contents.
func parseFiles(ctx context.Context, parser *importer.Parser, files []string) ([]model.Deal, error) {
	var deals []model.Deal
	index := make(map[string]int)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parsed, err := parser.ParseFile(ctx, path)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("Could not import %s", filepath.Base(path)), err)
		}

		for _, d := range parsed {
			if i, seen := index[d.ID]; seen {
				slog.Debug("Duplicate deal id, keeping the later record", "id", d.ID, "file", path)
				deals[i] = d
				continue
			}
			index[d.ID] = len(deals)
			deals = append(deals, d)
		}
	}

	return deals, nil
}

// saveInBatches writes deals in transactions of batchSize, retrying batches
// that hit a busy database. It returns how many deals were saved.
func saveInBatches(ctx context.Context, store service.DealStore, deals []model.Deal, batchSize int, progress io.Writer) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	bar := progressbar.NewOptions(len(deals),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Saving deals...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(progress); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	saved := 0
	for start := 0; start < len(deals); start += batchSize {
		if err := ctx.Err(); err != nil {
			return saved, err
		}

		end := min(start+batchSize, len(deals))
		batch := deals[start:end]

		err := common.WithRetry(ctx, func() error {
			return store.SaveDeals(ctx, batch)
		}, common.RetryOptions{MaxAttempts: 3})
		if err != nil {
			common.LogError(err, "Failed to save deal batch", common.Fields{
				"start": start + 1,
				"end":   end,
				"saved": saved,
			})
			return saved, fmt.Errorf("failed to save deals %d-%d: %w", start+1, end, err)
		}

		saved += len(batch)
		if err := bar.Add(len(batch)); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	return saved, nil
}
