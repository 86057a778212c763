package model

import "time"

// Stage is a named step of the sales pipeline.
type Stage struct {
	CreatedAt time.Time
	Name      string
	ID        int
	Position  int
}
