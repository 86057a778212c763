package filterbar

import (
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/dealflow/internal/debounce"
	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	spec filter.Spec
	at   time.Duration
}

type harness struct {
	clock   *debounce.ManualClock
	start   time.Time
	changes []change
	notices []Notice
	mu      sync.Mutex
	ctrl    *Controller
}

func newHarness(t *testing.T, initial filter.Spec) *harness {
	t.Helper()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h := &harness{clock: debounce.NewManualClock(start), start: start}
	h.ctrl = New(initial,
		func(s filter.Spec) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.changes = append(h.changes, change{spec: s, at: h.clock.Now().Sub(h.start)})
		},
		WithClock(h.clock),
		WithDebounce(300*time.Millisecond),
		WithNotifier(NotifierFunc(func(n Notice) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.notices = append(h.notices, n)
		})),
	)
	t.Cleanup(h.ctrl.Close)
	return h
}

func (h *harness) recorded() []change {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]change(nil), h.changes...)
}

func (h *harness) noticeTitles() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	titles := make([]string, len(h.notices))
	for i, n := range h.notices {
		titles[i] = n.Title
	}
	return titles
}

func TestController_SearchIsDebounced(t *testing.T) {
	h := newHarness(t, filter.Clear())

	h.ctrl.SetSearch("a")
	assert.Equal(t, "a", h.ctrl.Spec().Search(), "search text is visible immediately")
	h.clock.Advance(50 * time.Millisecond)
	h.ctrl.SetSearch("ac")
	h.clock.Advance(50 * time.Millisecond)
	h.ctrl.SetSearch("acm")
	assert.True(t, h.ctrl.SearchPending())

	h.clock.Advance(299 * time.Millisecond)
	assert.Empty(t, h.recorded())
	assert.Equal(t, "", h.ctrl.Published().Search())

	h.clock.Advance(time.Millisecond)
	changes := h.recorded()
	require.Len(t, changes, 1)
	assert.Equal(t, 400*time.Millisecond, changes[0].at)
	assert.Equal(t, "acm", changes[0].spec.Search())
	assert.Equal(t, "acm", h.ctrl.Published().Search())
	assert.False(t, h.ctrl.SearchPending())
}

func TestController_DebouncedSearchUsesLatestSpec(t *testing.T) {
	h := newHarness(t, filter.Clear())

	h.ctrl.SetSearch("beta")
	h.ctrl.SetHideClosed(false) // staged edit made after the keystroke
	h.clock.Advance(300 * time.Millisecond)

	changes := h.recorded()
	require.Len(t, changes, 1)
	assert.Equal(t, "beta", changes[0].spec.Search())
	assert.False(t, changes[0].spec.HidesClosed())
}

func TestController_ToggleStatus(t *testing.T) {
	h := newHarness(t, filter.Clear())

	closeMenu := h.ctrl.ToggleStatus(model.StatusWaiting)
	assert.False(t, closeMenu)
	closeMenu = h.ctrl.ToggleStatus(model.StatusWaiting)
	assert.True(t, closeMenu, "menu closes once no status is selected")

	changes := h.recorded()
	require.Len(t, changes, 2)
	assert.True(t, changes[0].spec.Statuses().Has(model.StatusWaiting))
	assert.True(t, changes[1].spec.Equal(filter.Clear()))
	assert.Empty(t, h.noticeTitles(), "status toggles are silent")
}

func TestController_ImmediateActionSupersedesPendingSearch(t *testing.T) {
	h := newHarness(t, filter.Clear())

	h.ctrl.SetSearch("acme")
	h.clock.Advance(100 * time.Millisecond)
	h.ctrl.ApplySort(filter.SortByValue, filter.Ascending)

	changes := h.recorded()
	require.Len(t, changes, 1)
	assert.Equal(t, "acme", changes[0].spec.Search(), "published spec carries the latest search text")
	assert.Equal(t, filter.SortByValue, changes[0].spec.SortBy())

	h.clock.Advance(time.Second)
	assert.Len(t, h.recorded(), 1, "no duplicate publish from the superseded timer")
}

func TestController_StagedEditsWaitForApply(t *testing.T) {
	h := newHarness(t, filter.Clear())

	h.ctrl.SetHideClosed(false)
	h.ctrl.SetStage(3)
	assert.Empty(t, h.recorded())

	id, ok := h.ctrl.Spec().StageID()
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	h.ctrl.Apply()
	changes := h.recorded()
	require.Len(t, changes, 1)
	assert.False(t, changes[0].spec.HidesClosed())
	assert.Equal(t, []string{"Filters applied"}, h.noticeTitles())

	h.ctrl.ClearStage()
	h.ctrl.Apply()
	changes = h.recorded()
	require.Len(t, changes, 2)
	_, ok = changes[1].spec.StageID()
	assert.False(t, ok)
}

func TestController_ApplyWithoutChangesStillPublishes(t *testing.T) {
	initial := filter.Clear().WithSort(filter.SortByName, filter.Ascending)
	h := newHarness(t, initial)

	h.ctrl.Apply()
	changes := h.recorded()
	require.Len(t, changes, 1)
	assert.True(t, changes[0].spec.Equal(initial))
}

func TestController_Clear(t *testing.T) {
	h := newHarness(t, filter.Clear().WithStatuses(model.StatusLost).WithHideClosed(false))

	h.ctrl.SetSearch("pending")
	h.ctrl.Clear()

	changes := h.recorded()
	require.Len(t, changes, 1)
	assert.True(t, changes[0].spec.Equal(filter.Clear()))
	assert.Equal(t, 0, changes[0].spec.ActiveFilterCount())
	assert.Equal(t, []string{"Filters cleared"}, h.noticeTitles())

	h.clock.Advance(time.Second)
	assert.Len(t, h.recorded(), 1, "clear cancels the pending search")
}

func TestController_CloseCancelsPendingSearch(t *testing.T) {
	h := newHarness(t, filter.Clear())

	h.ctrl.SetSearch("gone")
	h.ctrl.Close()
	h.clock.Advance(time.Second)
	assert.Empty(t, h.recorded())

	h.ctrl.ToggleStatus(model.StatusWon)
	h.ctrl.Apply()
	assert.Empty(t, h.recorded(), "nothing is delivered after close")
}

func TestController_RealClock(t *testing.T) {
	var (
		mu  sync.Mutex
		got []filter.Spec
	)
	ctrl := New(filter.Clear(), func(s filter.Spec) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, s)
	}, WithDebounce(10*time.Millisecond), WithNotifier(NotifierFunc(func(Notice) {})))
	defer ctrl.Close()

	for _, text := range []string{"b", "be", "bet", "beta"} {
		ctrl.SetSearch(text)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 2*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "beta", got[0].Search())
}
