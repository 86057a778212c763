// Package model defines the core domain models used throughout the application.
package model

import (
	"math"
	"time"
)

// Deal represents a single business deal in the pipeline.
type Deal struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Company   string
	Status    DealStatus
	Value     float64 // Monetary value; NaN means unknown
	StageID   int
}

// HasValue reports whether the deal carries a usable monetary value.
func (d Deal) HasValue() bool {
	return !math.IsNaN(d.Value)
}

// HasCreatedAt reports whether the deal carries a creation time.
func (d Deal) HasCreatedAt() bool {
	return !d.CreatedAt.IsZero()
}
