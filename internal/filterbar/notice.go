package filterbar

import "log/slog"

// NoticeKind classifies a notice for presentation.
type NoticeKind int

// Notice kinds.
const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarning
)

// Notice is a short message for the user about a filter action.
type Notice struct {
	Title       string
	Description string
	Kind        NoticeKind
}

// Notifier presents notices. The host decides whether and how.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

// LogNotifier writes notices to the default slog logger.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(n Notice) {
	slog.Info(n.Title, "description", n.Description)
}

var (
	noticeApplied = Notice{
		Title:       "Filters applied",
		Description: "Deals were filtered according to your preferences.",
		Kind:        NoticeSuccess,
	}
	noticeCleared = Notice{
		Title:       "Filters cleared",
		Description: "All filters were removed.",
		Kind:        NoticeInfo,
	}
)
