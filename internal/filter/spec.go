// Package filter holds the filter/sort state of a deal view and the
// evaluator that applies it to a collection of deals.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/dealflow/internal/model"
)

// Spec describes the user's desired view of the deal pipeline.
//
// A Spec is a value: every transition returns a new Spec and leaves the
// receiver untouched. The zero value is the canonical default view (no search,
// every status, newest first, closed deals hidden, no stage scope) and is what
// Clear returns.
type Spec struct {
	search        string
	statuses      StatusSet
	stageID       int
	sortBy        SortField
	sortOrder     SortOrder
	hasStage      bool
	includeClosed bool
}

// Dimension names one of the user-facing filter dimensions counted by
// ActiveFilterCount.
type Dimension int

// Filter dimensions.
const (
	DimensionSearch Dimension = iota
	DimensionStatus
	DimensionSort
	DimensionClosed
)

// Clear returns the default spec.
func Clear() Spec {
	return Spec{}
}

// Search returns the free-text query.
func (s Spec) Search() string { return s.search }

// Statuses returns the selected status set.
func (s Spec) Statuses() StatusSet { return s.statuses }

// SortBy returns the sort field.
func (s Spec) SortBy() SortField { return s.sortBy }

// SortOrder returns the sort direction.
func (s Spec) SortOrder() SortOrder { return s.sortOrder }

// StageID returns the stage scope and whether one is set.
func (s Spec) StageID() (int, bool) { return s.stageID, s.hasStage }

// HidesClosed reports whether closed deals are excluded from the view.
func (s Spec) HidesClosed() bool { return !s.includeClosed }

// WithSearch returns a copy with the given search text.
func (s Spec) WithSearch(search string) Spec {
	s.search = search
	return s
}

// WithStatuses returns a copy whose status set is exactly the given statuses.
func (s Spec) WithStatuses(statuses ...model.DealStatus) Spec {
	s.statuses = NewStatusSet(statuses...)
	return s
}

// ToggleStatus returns a copy with status added to the set if absent, or
// removed if present.
func (s Spec) ToggleStatus(status model.DealStatus) Spec {
	s.statuses = s.statuses.Toggle(status)
	return s
}

// WithSort returns a copy ordered by field in the given direction.
func (s Spec) WithSort(field SortField, order SortOrder) Spec {
	s.sortBy = field
	s.sortOrder = order
	return s
}

// WithStage returns a copy scoped to a single pipeline stage.
func (s Spec) WithStage(stageID int) Spec {
	s.stageID = stageID
	s.hasStage = true
	return s
}

// WithoutStage returns a copy with no stage scope.
func (s Spec) WithoutStage() Spec {
	s.stageID = 0
	s.hasStage = false
	return s
}

// WithHideClosed returns a copy that hides (true) or shows (false) closed deals.
func (s Spec) WithHideClosed(hide bool) Spec {
	s.includeClosed = !hide
	return s
}

// IsActive reports whether a dimension differs from the default view.
func (s Spec) IsActive(d Dimension) bool {
	switch d {
	case DimensionSearch:
		return s.search != ""
	case DimensionStatus:
		return s.statuses.Len() > 0
	case DimensionSort:
		return s.sortBy != SortByDate || s.sortOrder != Descending
	case DimensionClosed:
		return s.includeClosed
	default:
		return false
	}
}

// ActiveFilterCount returns how many dimensions differ from the default view.
// Stage scope is not counted.
func (s Spec) ActiveFilterCount() int {
	count := 0
	for _, d := range []Dimension{DimensionSearch, DimensionStatus, DimensionSort, DimensionClosed} {
		if s.IsActive(d) {
			count++
		}
	}
	return count
}

// Equal reports whether two specs describe the same view. Status sets are
// compared as sets.
func (s Spec) Equal(other Spec) bool {
	return s.search == other.search &&
		s.sortBy == other.sortBy &&
		s.sortOrder == other.sortOrder &&
		s.hasStage == other.hasStage &&
		s.stageID == other.stageID &&
		s.includeClosed == other.includeClosed &&
		s.statuses.Equal(other.statuses)
}

func (s Spec) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "search=%q status=[%s] sort=%s:%s", s.search, s.statuses, s.sortBy, s.sortOrder)
	if s.hasStage {
		fmt.Fprintf(&b, " stage=%d", s.stageID)
	}
	if s.includeClosed {
		b.WriteString(" closed=shown")
	} else {
		b.WriteString(" closed=hidden")
	}
	return b.String()
}

// StatusSet is an immutable set of deal statuses that remembers insertion order.
type StatusSet struct {
	values []model.DealStatus
}

// NewStatusSet builds a set from statuses, dropping duplicates.
func NewStatusSet(statuses ...model.DealStatus) StatusSet {
	var values []model.DealStatus
	for _, status := range statuses {
		if !slices.Contains(values, status) {
			values = append(values, status)
		}
	}
	return StatusSet{values: values}
}

// Has reports whether status is in the set.
func (s StatusSet) Has(status model.DealStatus) bool {
	return slices.Contains(s.values, status)
}

// Len returns the number of statuses in the set.
func (s StatusSet) Len() int { return len(s.values) }

// Values returns a copy of the members in insertion order.
func (s StatusSet) Values() []model.DealStatus {
	return slices.Clone(s.values)
}

// Toggle returns a new set with status added if absent or removed if present.
func (s StatusSet) Toggle(status model.DealStatus) StatusSet {
	i := slices.Index(s.values, status)
	if i < 0 {
		values := make([]model.DealStatus, 0, len(s.values)+1)
		values = append(values, s.values...)
		return StatusSet{values: append(values, status)}
	}
	if len(s.values) == 1 {
		return StatusSet{}
	}
	values := make([]model.DealStatus, 0, len(s.values)-1)
	values = append(values, s.values[:i]...)
	values = append(values, s.values[i+1:]...)
	return StatusSet{values: values}
}

// Equal reports whether both sets hold the same members, in any order.
func (s StatusSet) Equal(other StatusSet) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for _, v := range s.values {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

func (s StatusSet) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
