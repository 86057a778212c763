// Package testutil provides test utilities for the deals project: an isolated
// in-memory database and a fluent builder for deal fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/service"
	"github.com/Veraticus/dealflow/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.DealStore
	t       *testing.T
	Deals   []model.Deal
}

// SetupTestDB creates a new in-memory test database seeded with deals.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.NewDealBuilder().WithPipeline().Build())
func SetupTestDB(t *testing.T, deals []model.Deal) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Deals: deals})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.DealStore) error
	Deals          []model.Deal
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if len(opts.Deals) > 0 {
		if err := store.SaveDeals(ctx, opts.Deals); err != nil {
			t.Fatalf("failed to seed deals: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		Deals:   opts.Deals,
		t:       t,
	}
}

// MustGetDeal returns the stored deal with the given ID or fails the test.
func (db *TestDB) MustGetDeal(id string) model.Deal {
	db.t.Helper()
	deal, err := db.Storage.GetDeal(context.Background(), id)
	if err != nil {
		db.t.Fatalf("deal %q not found: %v", id, err)
	}
	return *deal
}
