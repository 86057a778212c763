package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/dealflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidDeal  = errors.New("invalid deal")
	ErrInvalidStage = errors.New("invalid stage")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDeals validates a slice of deals.
func validateDeals(deals []model.Deal) error {
	if deals == nil {
		return fmt.Errorf("%w: deals", ErrNilParameter)
	}
	if len(deals) == 0 {
		return fmt.Errorf("%w: deals", ErrEmptySlice)
	}

	for i := range deals {
		if err := validateDeal(&deals[i]); err != nil {
			return fmt.Errorf("deal at index %d: %w", i, err)
		}
	}
	return nil
}

// validateDeal validates a single deal. Name, company, value and creation
// time may be missing; the evaluator sorts such deals last.
func validateDeal(deal *model.Deal) error {
	if deal == nil {
		return fmt.Errorf("%w: deal", ErrNilParameter)
	}
	if strings.TrimSpace(deal.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidDeal)
	}
	if strings.TrimSpace(string(deal.Status)) == "" {
		return fmt.Errorf("%w: missing status", ErrInvalidDeal)
	}
	if math.IsInf(deal.Value, 0) {
		return fmt.Errorf("%w: infinite value", ErrInvalidDeal)
	}
	if deal.StageID < 0 {
		return fmt.Errorf("%w: negative stage ID %d", ErrInvalidDeal, deal.StageID)
	}
	return nil
}

// validateStage validates a stage.
func validateStage(stage *model.Stage) error {
	if stage == nil {
		return fmt.Errorf("%w: stage", ErrNilParameter)
	}
	if strings.TrimSpace(stage.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidStage)
	}
	return nil
}
