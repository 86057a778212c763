// Package filterbar owns the filter state of a deal view on behalf of a host UI.
//
// The controller turns user actions into pure filter.Spec transitions and
// tells the host when the displayed list should be re-evaluated. Sort and
// status changes are published immediately; search edits are visible at once
// through Spec but published only after the input has been quiet for the
// debounce delay.
package filterbar

import (
	"sync"
	"time"

	"github.com/Veraticus/dealflow/internal/debounce"
	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
)

// DefaultDebounce is the quiet period applied to search input.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc receives every spec the displayed list should reflect.
type ChangeFunc func(filter.Spec)

// Controller holds the current spec of one view.
type Controller struct {
	notifier  Notifier
	onChange  ChangeFunc
	search    *debounce.Debouncer[snapshot]
	spec      filter.Spec
	published filter.Spec
	version   uint64
	delivered uint64
	mu        sync.Mutex
	deliverMu sync.Mutex
	closed    bool
}

// snapshot pairs a spec with the edit count that produced it, so an older
// spec can never overwrite a newer one.
type snapshot struct {
	spec    filter.Spec
	version uint64
}

// Option configures a Controller.
type Option func(*config)

type config struct {
	notifier Notifier
	clock    debounce.Clock
	delay    time.Duration
}

// WithNotifier sets where notices go. The default logs them.
func WithNotifier(n Notifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithDebounce sets the search quiet period.
func WithDebounce(delay time.Duration) Option {
	return func(c *config) {
		c.delay = delay
	}
}

// WithClock sets the clock used for debouncing.
func WithClock(clock debounce.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// New creates a controller starting from initial. onChange is called from the
// caller's goroutine for immediate actions and from a timer goroutine for
// debounced search; calls never overlap. onChange may read Spec or Published
// but must not call the mutating methods.
func New(initial filter.Spec, onChange ChangeFunc, opts ...Option) *Controller {
	cfg := config{
		notifier: LogNotifier{},
		clock:    debounce.RealClock{},
		delay:    DefaultDebounce,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller{
		spec:      initial,
		published: initial,
		onChange:  onChange,
		notifier:  cfg.notifier,
	}
	c.search = debounce.New(cfg.delay, c.snapshot, func(s snapshot) {
		c.deliver(s, false)
	}, debounce.WithClock(cfg.clock))

	return c
}

// Spec returns the filter as currently edited, including unpublished search text.
func (c *Controller) Spec() filter.Spec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec
}

// Published returns the last spec handed to the change callback.
func (c *Controller) Published() filter.Spec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.published
}

// SearchPending reports whether a search edit is waiting for its quiet period.
func (c *Controller) SearchPending() bool {
	return c.search.Pending()
}

// SetSearch records new search text and schedules a debounced publish.
// Each call restarts the quiet period.
func (c *Controller) SetSearch(text string) {
	c.update(func(s filter.Spec) filter.Spec { return s.WithSearch(text) })
	c.search.Trigger()
}

// ToggleStatus adds or removes a status and publishes at once. It reports
// whether the status set is now empty, which is when the status menu closes.
func (c *Controller) ToggleStatus(status model.DealStatus) bool {
	s := c.update(func(s filter.Spec) filter.Spec { return s.ToggleStatus(status) })
	c.publish(s, false)
	return s.spec.Statuses().Len() == 0
}

// ApplySort changes the ordering and publishes at once.
func (c *Controller) ApplySort(field filter.SortField, order filter.SortOrder) {
	s := c.update(func(s filter.Spec) filter.Spec { return s.WithSort(field, order) })
	c.publish(s, false)
}

// SetHideClosed stages the hide-closed choice. Call Apply to publish it.
func (c *Controller) SetHideClosed(hide bool) {
	c.update(func(s filter.Spec) filter.Spec { return s.WithHideClosed(hide) })
}

// SetStage stages a stage scope. Call Apply to publish it.
func (c *Controller) SetStage(stageID int) {
	c.update(func(s filter.Spec) filter.Spec { return s.WithStage(stageID) })
}

// ClearStage stages removal of the stage scope. Call Apply to publish it.
func (c *Controller) ClearStage() {
	c.update(func(s filter.Spec) filter.Spec { return s.WithoutStage() })
}

// Apply publishes the current spec, including any pending search text.
func (c *Controller) Apply() {
	c.publish(c.snapshot(), true)
	c.notifier.Notify(noticeApplied)
}

// Clear resets to the default spec, drops any pending search and publishes.
func (c *Controller) Clear() {
	s := c.update(func(filter.Spec) filter.Spec { return filter.Clear() })
	c.publish(s, true)
	c.notifier.Notify(noticeCleared)
}

// Close cancels any pending search publish. No change callback runs after
// Close returns.
func (c *Controller) Close() {
	c.search.Stop()

	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller) update(fn func(filter.Spec) filter.Spec) snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spec = fn(c.spec)
	c.version++
	return snapshot{spec: c.spec, version: c.version}
}

func (c *Controller) snapshot() snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot{spec: c.spec, version: c.version}
}

// publish delivers s now. The published spec already carries the latest
// search text, so a pending debounced publish is redundant.
func (c *Controller) publish(s snapshot, force bool) {
	c.search.Cancel()
	c.deliver(s, force)
}

func (c *Controller) deliver(s snapshot, force bool) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	if c.closed || s.version < c.delivered || (s.version == c.delivered && !force) {
		c.mu.Unlock()
		return
	}
	c.delivered = s.version
	c.published = s.spec
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(s.spec)
	}
}
