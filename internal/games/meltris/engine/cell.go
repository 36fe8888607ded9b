package engine

import (
	"time"

	"github.com/vovakirdan/meltris/internal/timer"
)

// CellKind tags the variant held by a Cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellFilled
	CellDecaying
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellFilled:
		return "filled"
	case CellDecaying:
		return "decaying"
	default:
		return "unknown"
	}
}

// MeltStage is the decay stage of a Decaying cell.
type MeltStage uint8

const (
	StageIce MeltStage = iota
	StageMiddle
	StageMelted
)

func (s MeltStage) String() string {
	switch s {
	case StageIce:
		return "ice"
	case StageMiddle:
		return "middle"
	case StageMelted:
		return "melted"
	default:
		return "unknown"
	}
}

// Cell is one grid position. Piece is meaningful for Filled and Decaying
// cells; Stage and Deadline only for Decaying ones.
type Cell struct {
	Kind     CellKind
	Piece    PieceType
	Stage    MeltStage
	Deadline time.Duration // Virtual time of the next stage change

	timer *timer.Timer
}

// Occupied reports whether the cell blocks pieces and counts toward a full row.
// A melted cell is equivalent to an empty one.
func (c *Cell) Occupied() bool {
	switch c.Kind {
	case CellFilled:
		return true
	case CellDecaying:
		return c.Stage != StageMelted
	default:
		return false
	}
}

// cancel stops any pending stage timer.
func (c *Cell) cancel() {
	c.timer.Stop()
	c.timer = nil
}
