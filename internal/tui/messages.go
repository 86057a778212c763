package tui

import (
	"github.com/Veraticus/dealflow/internal/filterbar"
	"github.com/Veraticus/dealflow/internal/model"
)

// filterChangedMsg tells the model that the controller published a new spec.
// The model reads the filter from the controller, so out-of-order delivery
// cannot show a stale view.
type filterChangedMsg struct{}

type dealsLoadedMsg struct {
	err    error
	deals  []model.Deal
	stages []model.Stage
}

type noticeMsg struct {
	notice filterbar.Notice
}

type noticeExpiredMsg struct {
	id int
}
