package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/config"
	"github.com/Veraticus/dealflow/internal/tui"
	"github.com/Veraticus/dealflow/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse deals interactively",
		Long: `Open the interactive deal browser.

Keys:
  /        search deals and companies
  s        filter by status
  o        change the sort order
  h        show or hide closed deals (press a to apply)
  [ ]      cycle the stage scope (press a to apply)
  a        apply staged filters
  c        clear all filters
  ?        help
  q        quit

Set logging.tui_file to capture logs while the browser owns the terminal.`,
		RunE: runBrowse,
	}

	cmd.Flags().String("theme", "", "color theme ("+themeList()+")")
	_ = viper.BindPFlag(config.KeyTheme, cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	fc, err := loadFilterConfig()
	if err != nil {
		return err
	}

	restore, err := redirectLogging(viper.GetString(config.KeyTUILogFile))
	if err != nil {
		return err
	}
	defer restore()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	slog.Info("Starting deal browser", "theme", viper.GetString(config.KeyTheme))

	return tui.Run(ctx,
		tui.WithSource(store),
		tui.WithFilterConfig(fc),
		tui.WithTheme(themes.GetTheme(viper.GetString(config.KeyTheme))),
	)
}

// redirectLogging points the default logger at path, or discards log output
// when path is empty, for as long as the browser owns the terminal.
func redirectLogging(path string) (func(), error) {
	previous := slog.Default()
	restore := func() { slog.SetDefault(previous) }

	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return nil, err
	}
	format := viper.GetString("logging.format")

	if path == "" {
		if err := common.SetupLoggerTo(io.Discard, level, format); err != nil {
			return nil, err
		}
		return restore, nil
	}

	f, err := tea.LogToFile(config.ExpandPath(path), "deals")
	if err != nil {
		return nil, fmt.Errorf("failed to open TUI log file: %w", err)
	}
	if err := common.SetupLoggerTo(f, level, format); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		restore()
		_ = f.Close()
	}, nil
}

func themeList() string {
	return strings.Join(themes.Names(), ", ")
}
