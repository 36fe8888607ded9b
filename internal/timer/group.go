package timer

import (
	"time"

	"github.com/kamstrup/intmap"
)

// Group scopes a set of timers to one owner (a round, a grid, a screen).
// StopAll releases every timer started through the group, whatever path
// ended the owner's lifetime.
type Group struct {
	clock  *Clock
	timers *intmap.Map[uint64, *Timer]
	closed bool
}

// NewGroup creates an empty timer group on the given clock.
func NewGroup(c *Clock) *Group {
	return &Group{
		clock:  c,
		timers: intmap.New[uint64, *Timer](32),
	}
}

// Clock returns the clock the group schedules on.
func (g *Group) Clock() *Clock {
	return g.clock
}

// AfterFunc schedules a one-shot timer owned by the group.
// After StopAll the group hands out already-stopped timers.
func (g *Group) AfterFunc(d time.Duration, f func()) *Timer {
	t := &Timer{clock: g.clock, fn: f, group: g}
	if g.closed {
		return t
	}
	g.clock.schedule(t, d)
	return t
}

// Every schedules a periodic timer owned by the group.
func (g *Group) Every(period time.Duration, f func()) *Timer {
	if period <= 0 {
		period = time.Nanosecond
	}
	t := &Timer{clock: g.clock, fn: f, period: period, group: g}
	if g.closed {
		return t
	}
	g.clock.schedule(t, period)
	return t
}

// Len returns the number of pending timers owned by the group.
func (g *Group) Len() int {
	return g.timers.Len()
}

// StopAll cancels every pending timer of the group and closes it.
// Returns the number of timers that were cancelled.
func (g *Group) StopAll() int {
	pending := make([]*Timer, 0, g.timers.Len())
	g.timers.ForEach(func(_ uint64, t *Timer) bool {
		pending = append(pending, t)
		return true
	})

	stopped := 0
	for _, t := range pending {
		if t.Stop() {
			stopped++
		}
	}
	g.timers.Clear()
	g.closed = true
	return stopped
}

// Closed reports whether StopAll has been called.
func (g *Group) Closed() bool {
	return g.closed
}

func (g *Group) track(t *Timer) {
	if g.closed {
		// Reset on a timer of a closed group must not revive it.
		t.active = false
		t.gen++
		g.clock.live.Del(t.id)
		return
	}
	g.timers.Put(t.id, t)
}

func (g *Group) untrack(t *Timer) {
	g.timers.Del(t.id)
}
