package filter

import (
	"cmp"
	"strings"

	"github.com/Veraticus/dealflow/internal/model"
)

// fieldComparator orders two deals by one field. missing reports deals that
// lack the field; they always sort after deals that have it.
type fieldComparator struct {
	compare func(a, b model.Deal) int
	missing func(d model.Deal) bool
}

var comparators = map[SortField]fieldComparator{
	SortByName: {
		compare: func(a, b model.Deal) int { return strings.Compare(a.Name, b.Name) },
		missing: func(d model.Deal) bool { return d.Name == "" },
	},
	SortByCompany: {
		compare: func(a, b model.Deal) int { return strings.Compare(a.Company, b.Company) },
		missing: func(d model.Deal) bool { return d.Company == "" },
	},
	SortByValue: {
		compare: func(a, b model.Deal) int { return cmp.Compare(a.Value, b.Value) },
		missing: func(d model.Deal) bool { return !d.HasValue() },
	},
	SortByDate: {
		compare: func(a, b model.Deal) int { return a.CreatedAt.Compare(b.CreatedAt) },
		missing: func(d model.Deal) bool { return !d.HasCreatedAt() },
	},
}

// comparator returns the three-way comparison for field and order.
func comparator(field SortField, order SortOrder) func(a, b model.Deal) int {
	fc, ok := comparators[field]
	if !ok {
		fc = comparators[SortByDate]
	}

	return func(a, b model.Deal) int {
		aMissing, bMissing := fc.missing(a), fc.missing(b)
		switch {
		case aMissing && bMissing:
			return 0
		case aMissing:
			return 1
		case bMissing:
			return -1
		}

		c := fc.compare(a, b)
		if order == Descending {
			return -c
		}
		return c
	}
}
