package model

import "slices"

// DealStatus identifies where a deal stands in its lifecycle.
type DealStatus string

// Known deal statuses. Data may carry others; they are passed through untouched.
const (
	StatusInProgress DealStatus = "in_progress"
	StatusWaiting    DealStatus = "waiting"
	StatusCompleted  DealStatus = "completed"
	StatusCanceled   DealStatus = "canceled"
	StatusWon        DealStatus = "won"
	StatusLost       DealStatus = "lost"
)

// TerminalStatuses are the statuses that represent a finished outcome.
var TerminalStatuses = []DealStatus{StatusWon, StatusLost}

// StatusInfo is the presentational metadata for a status.
type StatusInfo struct {
	Value      DealStatus
	Label      string
	Color      string // Accent name, e.g. "blue"
	Foreground string // Hex color for text
	Background string // Hex color for badges
	Border     string // Hex color for badge borders
}

// StatusCatalog maps statuses to their display metadata, in menu order.
type StatusCatalog []StatusInfo

// DefaultStatusCatalog returns the statuses offered by the filter menus.
func DefaultStatusCatalog() StatusCatalog {
	return StatusCatalog{
		{Value: StatusInProgress, Label: "In progress", Color: "blue", Foreground: "#1e40af", Background: "#dbeafe", Border: "#bfdbfe"},
		{Value: StatusWaiting, Label: "Waiting", Color: "yellow", Foreground: "#854d0e", Background: "#fef9c3", Border: "#fef08a"},
		{Value: StatusCompleted, Label: "Completed", Color: "green", Foreground: "#166534", Background: "#dcfce7", Border: "#bbf7d0"},
		{Value: StatusCanceled, Label: "Canceled", Color: "red", Foreground: "#991b1b", Background: "#fee2e2", Border: "#fecaca"},
		{Value: StatusWon, Label: "Won", Color: "green", Foreground: "#166534", Background: "#dcfce7", Border: "#bbf7d0"},
		{Value: StatusLost, Label: "Lost", Color: "red", Foreground: "#991b1b", Background: "#fee2e2", Border: "#fecaca"},
	}
}

// Lookup returns the metadata for a status. Unknown statuses get a neutral entry
// labeled with the raw value.
func (c StatusCatalog) Lookup(status DealStatus) (StatusInfo, bool) {
	i := slices.IndexFunc(c, func(info StatusInfo) bool { return info.Value == status })
	if i < 0 {
		return StatusInfo{
			Value:      status,
			Label:      string(status),
			Color:      "gray",
			Foreground: "#404040",
			Background: "#f5f5f5",
			Border:     "#e5e5e5",
		}, false
	}
	return c[i], true
}

// Label returns the display label for a status.
func (c StatusCatalog) Label(status DealStatus) string {
	info, _ := c.Lookup(status)
	return info.Label
}

// Values returns the statuses in catalog order.
func (c StatusCatalog) Values() []DealStatus {
	values := make([]DealStatus, len(c))
	for i, info := range c {
		values[i] = info.Value
	}
	return values
}
