package timer

import "time"

// Repeater implements directional auto-repeat for one group of keys.
// Press fires once immediately, again after Delay, then every Interval
// until the same key is released. A zero Delay uses Interval for the first
// repeat. Pressing another key of the group takes over the repetition.
type Repeater[K comparable] struct {
	group    *Group
	delay    time.Duration
	interval time.Duration
	fire     func(key K, repeat bool)

	held    K
	holding bool
	delayT  *Timer
	repeatT *Timer
}

// NewRepeater creates a repeater scheduling on g.
func NewRepeater[K comparable](g *Group, delay, interval time.Duration, fire func(key K, repeat bool)) *Repeater[K] {
	return &Repeater[K]{
		group:    g,
		delay:    delay,
		interval: interval,
		fire:     fire,
	}
}

// Press handles a key-down. OS-level repeat events (isRepeat) are ignored
// because the repeater generates its own.
func (r *Repeater[K]) Press(key K, isRepeat bool) {
	if isRepeat {
		return
	}
	r.cancel()
	r.held = key
	r.holding = true

	r.fire(key, false)
	if !r.holding || r.held != key {
		// The callback released or replaced the key.
		return
	}

	first := r.delay
	if first <= 0 {
		first = r.interval
	}
	r.delayT = r.group.AfterFunc(first, func() {
		r.fire(key, true)
		if !r.holding || r.held != key {
			return
		}
		r.repeatT = r.group.Every(r.interval, func() {
			r.fire(key, true)
		})
	})
}

// Release handles a key-up. Only the key currently held stops repetition.
func (r *Repeater[K]) Release(key K) {
	if !r.holding || r.held != key {
		return
	}
	r.cancel()
}

// Holding reports whether a key is currently repeating and which one.
func (r *Repeater[K]) Holding() (K, bool) {
	return r.held, r.holding
}

// Stop cancels any repetition regardless of which key is held.
func (r *Repeater[K]) Stop() {
	r.cancel()
}

func (r *Repeater[K]) cancel() {
	r.delayT.Stop()
	r.repeatT.Stop()
	r.delayT = nil
	r.repeatT = nil
	r.holding = false
}
