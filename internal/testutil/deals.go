package testutil

import (
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/dealflow/internal/model"
)

// BaseTime anchors fixture creation dates so tests are reproducible.
var BaseTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// DealBuilder builds deal fixtures in insertion order.
type DealBuilder struct {
	deals []model.Deal
}

// NewDealBuilder creates an empty builder.
func NewDealBuilder() *DealBuilder {
	return &DealBuilder{}
}

// Deal starts a new deal with the given name and company and returns an
// editor for it. IDs are assigned sequentially.
func (b *DealBuilder) Deal(name, company string) *DealEditor {
	b.deals = append(b.deals, model.Deal{
		ID:        fmt.Sprintf("deal-%d", len(b.deals)+1),
		Name:      name,
		Company:   company,
		Status:    model.StatusInProgress,
		Value:     math.NaN(),
		CreatedAt: BaseTime.AddDate(0, 0, len(b.deals)),
	})
	return &DealEditor{builder: b, index: len(b.deals) - 1}
}

// WithPipeline adds a small, mixed pipeline covering every status, a
// couple of stages and some missing fields.
func (b *DealBuilder) WithPipeline() *DealBuilder {
	b.Deal("Acme Renewal", "Acme Corp").Value(12000).Stage(2).Done()
	b.Deal("Globex Pilot", "Globex").Status(model.StatusWaiting).Value(3000).Stage(1).Done()
	b.Deal("Initech Upgrade", "Initech").Status(model.StatusWon).Value(4500).Stage(4).Done()
	b.Deal("Umbrella Audit", "Umbrella").Status(model.StatusLost).Value(800).Stage(3).Done()
	b.Deal("Hooli Expansion", "Hooli").Status(model.StatusCompleted).Stage(2).Done()
	b.Deal("Acme Support", "Acme Corp").Status(model.StatusCanceled).Value(150).Done()
	b.Deal("Untitled", "").Status(model.StatusWaiting).NoDate().Done()
	return b
}

// Build returns a copy of the built deals.
func (b *DealBuilder) Build() []model.Deal {
	out := make([]model.Deal, len(b.deals))
	copy(out, b.deals)
	return out
}

// DealEditor edits the most recently started deal.
type DealEditor struct {
	builder *DealBuilder
	index   int
}

func (e *DealEditor) deal() *model.Deal {
	return &e.builder.deals[e.index]
}

// ID overrides the generated ID.
func (e *DealEditor) ID(id string) *DealEditor {
	e.deal().ID = id
	return e
}

// Status sets the status.
func (e *DealEditor) Status(status model.DealStatus) *DealEditor {
	e.deal().Status = status
	return e
}

// Value sets the monetary value.
func (e *DealEditor) Value(v float64) *DealEditor {
	e.deal().Value = v
	return e
}

// Stage sets the pipeline stage.
func (e *DealEditor) Stage(id int) *DealEditor {
	e.deal().StageID = id
	return e
}

// CreatedAt sets the creation time.
func (e *DealEditor) CreatedAt(t time.Time) *DealEditor {
	e.deal().CreatedAt = t
	return e
}

// NoDate clears the creation time.
func (e *DealEditor) NoDate() *DealEditor {
	e.deal().CreatedAt = time.Time{}
	return e
}

// Done returns to the builder.
func (e *DealEditor) Done() *DealBuilder {
	return e.builder
}
