package filter

import (
	"slices"
	"strings"

	"github.com/Veraticus/dealflow/internal/model"
)

// ClosedFunc classifies a deal status as closed (a finished outcome).
type ClosedFunc func(model.DealStatus) bool

// ClosedStatuses returns a ClosedFunc that treats exactly the given statuses as closed.
func ClosedStatuses(statuses ...model.DealStatus) ClosedFunc {
	set := make(map[model.DealStatus]struct{}, len(statuses))
	for _, status := range statuses {
		set[status] = struct{}{}
	}
	return func(status model.DealStatus) bool {
		_, ok := set[status]
		return ok
	}
}

// Evaluator applies specs to deal collections.
type Evaluator struct {
	isClosed ClosedFunc
}

// NewEvaluator creates an evaluator with the given closed classification.
// A nil isClosed treats won and lost deals as closed.
func NewEvaluator(isClosed ClosedFunc) *Evaluator {
	if isClosed == nil {
		isClosed = ClosedStatuses(model.TerminalStatuses...)
	}
	return &Evaluator{isClosed: isClosed}
}

// Apply is shorthand for NewEvaluator(isClosed).Apply(deals, spec).
func Apply(deals []model.Deal, spec Spec, isClosed ClosedFunc) []model.Deal {
	return NewEvaluator(isClosed).Apply(deals, spec)
}

// Apply returns the deals that pass every active predicate of spec, ordered by
// its comparator. Filters run in order stage, closed, status, search; the sort
// is stable so deals with equal keys keep their input order. Neither deals nor
// spec is modified and the result never aliases deals.
func (e *Evaluator) Apply(deals []model.Deal, spec Spec) []model.Deal {
	out := make([]model.Deal, 0, len(deals))
	for _, deal := range deals {
		if e.Matches(deal, spec) {
			out = append(out, deal)
		}
	}

	slices.SortStableFunc(out, comparator(spec.sortBy, spec.sortOrder))
	return out
}

// Matches reports whether a single deal passes every active predicate of spec.
func (e *Evaluator) Matches(deal model.Deal, spec Spec) bool {
	if stageID, ok := spec.StageID(); ok && deal.StageID != stageID {
		return false
	}

	// hideClosed wins over an explicit status selection.
	if spec.HidesClosed() && e.isClosed(deal.Status) {
		return false
	}

	if spec.statuses.Len() > 0 && !spec.statuses.Has(deal.Status) {
		return false
	}

	if spec.search != "" {
		query := strings.ToLower(spec.search)
		if !strings.Contains(strings.ToLower(deal.Name), query) &&
			!strings.Contains(strings.ToLower(deal.Company), query) {
			return false
		}
	}

	return true
}

// IsClosed reports whether the evaluator classifies status as closed.
func (e *Evaluator) IsClosed(status model.DealStatus) bool {
	return e.isClosed(status)
}
