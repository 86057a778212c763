package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock_RunsTimersInDeadlineOrder(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	var order []string
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	stopped := clock.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())
	assert.Equal(t, 2, clock.PendingTimers())

	clock.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)
	assert.Equal(t, start.Add(25*time.Millisecond), clock.Now())

	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "c"}, order)
	assert.Equal(t, 0, clock.PendingTimers())
}

func TestManualClock_CallbackMayScheduleMore(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))

	var fired []time.Duration
	clock.AfterFunc(10*time.Millisecond, func() {
		fired = append(fired, clock.Now().Sub(time.Unix(0, 0)))
		clock.AfterFunc(10*time.Millisecond, func() {
			fired = append(fired, clock.Now().Sub(time.Unix(0, 0)))
		})
	})

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, fired)
}
