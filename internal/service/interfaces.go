// Package service defines the interfaces shared between the storage layer
// and the commands that consume it.
package service

import (
	"context"

	"github.com/Veraticus/dealflow/internal/model"
)

// DealSource is the read side of the deal store. The browser and the list
// command only need this much.
type DealSource interface {
	ListDeals(ctx context.Context) ([]model.Deal, error)
	ListStages(ctx context.Context) ([]model.Stage, error)
}

// DealStore defines the contract for our persistence layer.
type DealStore interface {
	DealSource

	// Deal operations
	SaveDeals(ctx context.Context, deals []model.Deal) error
	GetDeal(ctx context.Context, id string) (*model.Deal, error)
	DeleteDeal(ctx context.Context, id string) error
	CountDeals(ctx context.Context) (int, error)

	// Stage operations
	GetStageByName(ctx context.Context, name string) (*model.Stage, error)
	SaveStage(ctx context.Context, stage *model.Stage) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
