package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/dealflow/internal/config"
	"github.com/Veraticus/dealflow/internal/service"
	"github.com/Veraticus/dealflow/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (service.DealStore, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store service.DealStore) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

func loadFilterConfig() (config.FilterConfig, error) {
	return config.LoadFilterConfig(viper.GetViper())
}
