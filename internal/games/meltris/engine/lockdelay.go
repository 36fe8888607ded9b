package engine

import (
	"time"

	"github.com/vovakirdan/meltris/internal/timer"
)

// LockDelay is the grace period a resting piece gets before it locks.
// It is armed when a check finds the piece cannot descend and disarmed
// as soon as a later check finds it can. Staying grounded does not
// restart a running delay.
type LockDelay struct {
	timers   *timer.Group
	duration time.Duration
	onExpire func()

	t         *timer.Timer
	startTime time.Duration
}

// NewLockDelay creates an inactive lock delay calling onExpire when it runs out.
func NewLockDelay(timers *timer.Group, d time.Duration, onExpire func()) *LockDelay {
	return &LockDelay{timers: timers, duration: d, onExpire: onExpire}
}

// Check updates the state from whether the piece can currently descend.
func (l *LockDelay) Check(canDescend bool) {
	switch {
	case canDescend && l.Active():
		l.Cancel()
	case !canDescend && !l.Active():
		l.startTime = l.timers.Clock().Now()
		l.t = l.timers.AfterFunc(l.duration, func() {
			l.t = nil
			l.onExpire()
		})
	}
}

// Cancel disarms the delay without firing.
func (l *LockDelay) Cancel() {
	l.t.Stop()
	l.t = nil
}

// Active reports whether the delay is armed.
func (l *LockDelay) Active() bool {
	return l.t.Active()
}

// Progress returns the elapsed fraction of an armed delay in [0, 1], or 0.
func (l *LockDelay) Progress() float64 {
	if !l.Active() {
		return 0
	}
	elapsed := l.timers.Clock().Now() - l.startTime
	return min(float64(elapsed)/float64(l.duration), 1)
}
