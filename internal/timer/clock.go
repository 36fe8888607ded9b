// Package timer provides a deterministic virtual-time scheduler.
// All timers of a game run on one Clock that the platform advances in fixed
// steps, so callbacks execute synchronously on the caller's goroutine with
// run-to-completion semantics and tests can replay any timeline exactly.
package timer

import (
	"container/heap"
	"time"

	"github.com/kamstrup/intmap"
)

// Clock is a virtual clock with a queue of pending timers.
// Clock is not safe for concurrent use; the owning game loop drives it.
type Clock struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
	live  *intmap.Map[uint64, *Timer]
}

// NewClock creates a clock positioned at time zero.
func NewClock() *Clock {
	return &Clock{
		live: intmap.New[uint64, *Timer](64),
	}
}

// Now returns the current virtual time since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of timers that are scheduled and not stopped.
func (c *Clock) Pending() int {
	return c.live.Len()
}

// AfterFunc schedules f to run once after d has elapsed.
// A non-positive d fires on the next Advance call.
func (c *Clock) AfterFunc(d time.Duration, f func()) *Timer {
	t := &Timer{clock: c, fn: f}
	c.schedule(t, d)
	return t
}

// Every schedules f to run repeatedly, first after period and then every period.
// A non-positive period is treated as one nanosecond to keep the clock advancing.
func (c *Clock) Every(period time.Duration, f func()) *Timer {
	if period <= 0 {
		period = time.Nanosecond
	}
	t := &Timer{clock: c, fn: f, period: period}
	c.schedule(t, period)
	return t
}

// Advance moves the clock forward by d and fires every timer whose deadline
// falls inside the window, in deadline order (ties by scheduling order).
// Timers scheduled by callbacks fire in the same call if they are due.
// Returns the number of callbacks executed.
func (c *Clock) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := c.now + d
	fired := 0

	for len(c.queue) > 0 {
		entry := c.queue[0]
		if entry.deadline > target {
			break
		}
		heap.Pop(&c.queue)
		next := entry.timer
		if !next.active || entry.gen != next.gen {
			continue
		}

		c.now = entry.deadline
		if next.period > 0 {
			c.schedule(next, next.period)
		} else {
			next.active = false
			c.live.Del(next.id)
			next.notifyDone()
		}
		next.fn()
		fired++
	}

	c.now = target
	return fired
}

// schedule (re)queues t to fire d after the current time.
func (c *Clock) schedule(t *Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if t.id == 0 {
		c.seq++
		t.id = c.seq
	}
	c.seq++
	t.gen++
	t.deadline = c.now + d
	t.active = true
	c.live.Put(t.id, t)
	if t.group != nil {
		t.group.track(t)
	}
	heap.Push(&c.queue, queueEntry{timer: t, deadline: t.deadline, order: c.seq, gen: t.gen})
}

// Timer is a cancellable one-shot or periodic callback on a Clock.
type Timer struct {
	clock    *Clock
	fn       func()
	id       uint64
	deadline time.Duration
	period   time.Duration
	active   bool
	gen      uint64
	group    *Group
}

// Stop cancels the timer. Returns true if the timer was pending.
// Stopping a fired or stopped timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || !t.active {
		return false
	}
	t.active = false
	t.gen++
	t.clock.live.Del(t.id)
	t.notifyDone()
	return true
}

// Reset reschedules the timer to fire d from now, keeping its callback and
// period. A stopped or fired timer becomes pending again.
func (t *Timer) Reset(d time.Duration) {
	t.clock.schedule(t, d)
}

// Active reports whether the timer is still scheduled.
func (t *Timer) Active() bool {
	return t != nil && t.active
}

// Deadline returns the virtual time at which the timer fires next.
func (t *Timer) Deadline() time.Duration {
	return t.deadline
}

// Remaining returns how long until the timer fires, or 0 if it is not active.
func (t *Timer) Remaining() time.Duration {
	if !t.Active() {
		return 0
	}
	return t.deadline - t.clock.now
}

func (t *Timer) notifyDone() {
	if t.group != nil {
		t.group.untrack(t)
	}
}

// queueEntry is one scheduled firing. Entries whose gen no longer matches
// their timer were superseded by Stop or Reset and are skipped.
type queueEntry struct {
	timer    *Timer
	deadline time.Duration
	order    uint64
	gen      uint64
}

// timerQueue is a min-heap ordered by deadline, then scheduling order.
type timerQueue []queueEntry

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].order < q[j].order
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) {
	*q = append(*q, x.(queueEntry))
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = queueEntry{}
	*q = old[:n-1]
	return e
}
