package testutil_test

import (
	"context"
	"testing"

	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/service"
	"github.com/Veraticus/dealflow/internal/testutil"
)

func TestDealBuilder_Pipeline(t *testing.T) {
	deals := testutil.NewDealBuilder().WithPipeline().Build()
	if len(deals) != 7 {
		t.Fatalf("expected 7 deals, got %d", len(deals))
	}

	seen := make(map[model.DealStatus]bool)
	for _, d := range deals {
		seen[d.Status] = true
	}
	for _, status := range model.DefaultStatusCatalog().Values() {
		if !seen[status] {
			t.Errorf("pipeline fixture is missing status %q", status)
		}
	}

	if deals[4].HasValue() {
		t.Errorf("expected %q to have no value", deals[4].Name)
	}
	if deals[6].HasCreatedAt() {
		t.Errorf("expected %q to have no creation date", deals[6].Name)
	}
}

func TestDealBuilder_BuildCopies(t *testing.T) {
	b := testutil.NewDealBuilder().Deal("One", "Co").Value(1).Done()
	first := b.Build()
	first[0].Name = "changed"

	if got := b.Build()[0].Name; got != "One" {
		t.Errorf("Build() shared storage with caller: got %q", got)
	}
}

func TestSetupTestDB(t *testing.T) {
	deals := testutil.NewDealBuilder().
		Deal("Alpha", "A").ID("alpha").Value(10).Done().
		Deal("Beta", "B").Status(model.StatusWon).Done().
		Build()

	db := testutil.SetupTestDB(t, deals)

	stored, err := db.Storage.ListDeals(context.Background())
	if err != nil {
		t.Fatalf("failed to list deals: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(stored))
	}

	alpha := db.MustGetDeal("alpha")
	if alpha.Value != 10 {
		t.Errorf("expected value 10, got %v", alpha.Value)
	}
}

func TestSetupTestDBWithOptions_CustomSetup(t *testing.T) {
	called := false
	testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		CustomSetup: func(ctx context.Context, store service.DealStore) error {
			called = true
			_, err := store.CountDeals(ctx)
			return err
		},
	})
	if !called {
		t.Error("custom setup was not called")
	}
}
