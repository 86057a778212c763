package filter

import (
	"errors"
	"fmt"
	"strings"
)

// SortField selects the deal attribute a view is ordered by.
// The zero value sorts by creation date.
type SortField uint8

// Sort fields.
const (
	SortByDate SortField = iota
	SortByName
	SortByValue
	SortByCompany
)

// SortOrder is the direction of a sort. The zero value is descending.
type SortOrder uint8

// Sort orders.
const (
	Descending SortOrder = iota
	Ascending
)

// Parse errors.
var (
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownSortOrder = errors.New("unknown sort order")
)

var sortFieldNames = [...]string{
	SortByDate:    "date",
	SortByName:    "name",
	SortByValue:   "value",
	SortByCompany: "company",
}

var sortOrderNames = [...]string{
	Descending: "desc",
	Ascending:  "asc",
}

// SortFields returns every sort field in menu order.
func SortFields() []SortField {
	return []SortField{SortByName, SortByValue, SortByDate, SortByCompany}
}

// ParseSortField parses one of "name", "value", "date" or "company".
func ParseSortField(s string) (SortField, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, name := range sortFieldNames {
		if name == normalized {
			return SortField(i), nil
		}
	}
	return SortByDate, fmt.Errorf("%w: %q (want name, value, date or company)", ErrUnknownSortField, s)
}

// ParseSortOrder parses "asc" or "desc". The long forms are accepted too.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Descending, fmt.Errorf("%w: %q (want asc or desc)", ErrUnknownSortOrder, s)
}

func (f SortField) String() string {
	if int(f) < len(sortFieldNames) {
		return sortFieldNames[f]
	}
	return fmt.Sprintf("SortField(%d)", uint8(f))
}

func (o SortOrder) String() string {
	if int(o) < len(sortOrderNames) {
		return sortOrderNames[o]
	}
	return fmt.Sprintf("SortOrder(%d)", uint8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (f SortField) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *SortField) UnmarshalText(text []byte) error {
	parsed, err := ParseSortField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (o SortOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *SortOrder) UnmarshalText(text []byte) error {
	parsed, err := ParseSortOrder(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// SortOption is one entry of the sort menu.
type SortOption struct {
	Label string
	Field SortField
	Order SortOrder
}

// SortOptions returns the eight distinct (field, order) combinations in menu order.
func SortOptions() []SortOption {
	return []SortOption{
		{Label: "Name (A-Z)", Field: SortByName, Order: Ascending},
		{Label: "Name (Z-A)", Field: SortByName, Order: Descending},
		{Label: "Highest value", Field: SortByValue, Order: Descending},
		{Label: "Lowest value", Field: SortByValue, Order: Ascending},
		{Label: "Newest", Field: SortByDate, Order: Descending},
		{Label: "Oldest", Field: SortByDate, Order: Ascending},
		{Label: "Company (A-Z)", Field: SortByCompany, Order: Ascending},
		{Label: "Company (Z-A)", Field: SortByCompany, Order: Descending},
	}
}

// SortLabel returns the menu label for a field and order.
func SortLabel(field SortField, order SortOrder) string {
	for _, opt := range SortOptions() {
		if opt.Field == field && opt.Order == order {
			return opt.Label
		}
	}
	return field.String() + " " + order.String()
}
