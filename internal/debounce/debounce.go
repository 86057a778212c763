// Package debounce delays an action until input has been quiet for a fixed
// period, superseding (never queueing) earlier pending invocations.
package debounce

import (
	"sync"
	"time"
)

// Debouncer fires a callback once input has been quiet for the configured delay.
// The value handed to the callback is read when the timer fires, not when the
// trigger happened, so the callback always sees the latest state.
type Debouncer[T any] struct {
	clock      Clock
	timer      Timer
	current    func() T
	fire       func(T)
	delay      time.Duration
	generation uint64
	mu         sync.Mutex
	pending    bool
	stopped    bool
}

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock replaces the wall clock, typically with a ManualClock in tests.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New creates a debouncer. current is read at fire time and its result passed
// to fire. Both callbacks run without the debouncer's lock held.
func New[T any](delay time.Duration, current func() T, fire func(T), opts ...Option) *Debouncer[T] {
	o := options{clock: RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	return &Debouncer[T]{
		clock:   o.clock,
		delay:   delay,
		current: current,
		fire:    fire,
	}
}

// Delay returns the quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Trigger (re)starts the quiet period. Any pending invocation is superseded.
// Trigger does nothing after Stop.
func (d *Debouncer[T]) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.cancelLocked()
	d.pending = true
	generation := d.generation
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.run(generation)
	})
}

// Flush fires immediately if an invocation is pending and reports whether it did.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return false
	}
	d.cancelLocked()
	d.mu.Unlock()

	d.fire(d.current())
	return true
}

// Cancel drops any pending invocation. The debouncer stays usable.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop drops any pending invocation and disables the debouncer for good.
// Call it on teardown so no callback runs against a destroyed view.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// cancelLocked invalidates the scheduled timer. A timer callback that already
// started running sees a stale generation and returns without firing.
func (d *Debouncer[T]) cancelLocked() {
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
}

func (d *Debouncer[T]) run(generation uint64) {
	d.mu.Lock()
	if d.stopped || !d.pending || generation != d.generation {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fire(d.current())
}
