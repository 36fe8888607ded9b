// Package tui provides the Bubble Tea front end for meltris.
// It handles the terminal UI loop, input mapping, menus and SSH sessions.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// ID identifies the tick chain so a model ignores ticks it did not start.
type TickMsg struct {
	ID   int
	Time time.Time
}

// lastTickID hands out tick chain IDs; SSH sessions start chains concurrently.
var lastTickID int64

func nextTickID() int {
	return int(atomic.AddInt64(&lastTickID, 1))
}

// tickCmd returns a Bubble Tea command that sends one tick message after
// the interval for tickRate.
func tickCmd(tickRate, id int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
