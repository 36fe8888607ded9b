package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/meltris/internal/config"
	"github.com/vovakirdan/meltris/internal/timer"
)

// Field dimensions. Only the bottom VisibleHeight rows are shown;
// the rows above are the spawn and rotation buffer.
const (
	Width         = 10
	Height        = 40
	VisibleHeight = 20
	HiddenHeight  = Height - VisibleHeight
)

// Game-over zone: the two buffer rows right above the visible area, in the
// four columns centered on the spawn column.
const (
	spawnZoneTop    = HiddenHeight - 2
	spawnZoneLeft   = 3
	spawnZoneWidth  = 4
	spawnZoneHeight = 2
)

// MeltOptions controls the decay of newly placed cells.
// When Enabled is false placed cells are Filled and never decay.
type MeltOptions struct {
	Enabled       bool
	IceToMiddle   config.MeltRange
	MiddleToWater config.MeltRange
}

// Grid is the settled-block matrix. Rows hold cell pointers so stage
// timers keep addressing the right cell while rows shift.
type Grid struct {
	rows   [Height][]*Cell
	timers *timer.Group
	rng    *rand.Rand
}

// NewGrid creates an empty grid whose decay timers are scheduled on timers.
func NewGrid(timers *timer.Group, rng *rand.Rand) *Grid {
	g := &Grid{timers: timers, rng: rng}
	for y := range g.rows {
		g.rows[y] = emptyRow()
	}
	return g
}

func emptyRow() []*Cell {
	row := make([]*Cell, Width)
	for x := range row {
		row[x] = &Cell{}
	}
	return row
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Cell returns a copy of the cell at (x, y). Out-of-range positions are empty.
func (g *Grid) Cell(x, y int) Cell {
	if !inBounds(x, y) {
		return Cell{}
	}
	c := *g.rows[y][x]
	c.timer = nil
	return c
}

// Occupied reports whether (x, y) holds a non-melted block.
// Out-of-range positions are not occupied.
func (g *Grid) Occupied(x, y int) bool {
	return inBounds(x, y) && g.rows[y][x].Occupied()
}

// CanPlace reports whether every occupied cell of s, offset by (x, y),
// lands inside the grid on an empty or melted cell.
func (g *Grid) CanPlace(s Shape, x, y int) bool {
	for row := range s {
		for col, filled := range s[row] {
			if !filled {
				continue
			}
			gx, gy := x+col, y+row
			if !inBounds(gx, gy) || g.rows[gy][gx].Occupied() {
				return false
			}
		}
	}
	return true
}

// Fill sets a permanent, non-decaying block at (x, y).
func (g *Grid) Fill(x, y int, p PieceType) {
	if !inBounds(x, y) {
		return
	}
	g.rows[y][x].cancel()
	g.rows[y][x] = &Cell{Kind: CellFilled, Piece: p}
}

// Place copies the piece's occupied cells into the grid at (x, y).
// With melting enabled every cell starts as Ice and draws its own
// Ice->Middle and Middle->Melted durations, so a piece melts unevenly.
func (g *Grid) Place(t *Tetromino, x, y int, melt MeltOptions) {
	t.Shape().Cells(func(row, col int) {
		gx, gy := x+col, y+row
		if !inBounds(gx, gy) {
			return
		}
		g.rows[gy][gx].cancel()
		if !melt.Enabled {
			g.rows[gy][gx] = &Cell{Kind: CellFilled, Piece: t.Type}
			return
		}
		c := &Cell{Kind: CellDecaying, Piece: t.Type, Stage: StageIce}
		g.rows[gy][gx] = c
		g.startStage(c, melt.IceToMiddle, func() {
			c.Stage = StageMiddle
			g.startStage(c, melt.MiddleToWater, func() {
				c.Stage = StageMelted
				c.Deadline = 0
				c.timer = nil
			})
		})
	})
}

func (g *Grid) startStage(c *Cell, r config.MeltRange, next func()) {
	d := g.draw(r)
	c.Deadline = g.timers.Clock().Now() + d
	c.timer = g.timers.AfterFunc(d, next)
}

// draw picks a duration uniformly from [Base, Base+Range).
func (g *Grid) draw(r config.MeltRange) time.Duration {
	if r.Range <= 0 {
		return r.Base
	}
	return r.Base + time.Duration(g.rng.Int63n(int64(r.Range)))
}

// DeleteRows removes every complete row and returns how many were removed.
// A row is complete when all of its cells are occupied; melted cells count
// as empty. Pending stage timers of removed cells are cancelled, rows above
// shift down, and fresh empty rows enter at the top.
func (g *Grid) DeleteRows() int {
	cleared := 0
	for y := 0; y < Height; y++ {
		if !g.rowComplete(y) {
			continue
		}
		for _, c := range g.rows[y] {
			c.cancel()
		}
		for i := y; i > 0; i-- {
			g.rows[i] = g.rows[i-1]
		}
		g.rows[0] = emptyRow()
		cleared++
	}
	return cleared
}

func (g *Grid) rowComplete(y int) bool {
	for _, c := range g.rows[y] {
		if !c.Occupied() {
			return false
		}
	}
	return true
}

// SpawnBlocked reports whether any block sits in the game-over zone.
func (g *Grid) SpawnBlocked() bool {
	for y := spawnZoneTop; y < spawnZoneTop+spawnZoneHeight; y++ {
		for x := spawnZoneLeft; x < spawnZoneLeft+spawnZoneWidth; x++ {
			if g.Occupied(x, y) {
				return true
			}
		}
	}
	return false
}
