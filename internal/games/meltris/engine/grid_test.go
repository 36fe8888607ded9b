package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/meltris/internal/config"
	"github.com/vovakirdan/meltris/internal/timer"
)

func newTestGrid() (*timer.Clock, *Grid) {
	clock := timer.NewClock()
	return clock, NewGrid(timer.NewGroup(clock), rand.New(rand.NewSource(1)))
}

// monomino is a single-cell piece for building grid fixtures.
func monomino(p PieceType) *Tetromino {
	return &Tetromino{Type: p, shape: Shape{{true}}, width: 1, height: 1}
}

var fixedMelt = MeltOptions{
	Enabled:       true,
	IceToMiddle:   config.MeltRange{Base: time.Second},
	MiddleToWater: config.MeltRange{Base: 2 * time.Second},
}

func TestCanPlaceBounds(t *testing.T) {
	_, g := newTestGrid()
	o, _ := CanonicalShape(PieceO)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 0, 0, true},
		{"bottom-right corner", Width - 2, Height - 2, true},
		{"left of grid", -1, 10, false},
		{"right of grid", Width - 1, 10, false},
		{"above grid", 4, -1, false},
		{"below grid", 4, Height - 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.CanPlace(o, tc.x, tc.y))
		})
	}
}

func TestCanPlaceIgnoresEmptyShapeCells(t *testing.T) {
	_, g := newTestGrid()
	i, _ := CanonicalShape(PieceI)

	// Row 0 of the I matrix is empty, so the piece may hang one row above the grid.
	assert.True(t, g.CanPlace(i, 0, -1))
	assert.False(t, g.CanPlace(i, 0, -2))
}

func TestCanPlaceOccupancy(t *testing.T) {
	clock, g := newTestGrid()
	o, _ := CanonicalShape(PieceO)

	g.Fill(5, 30, PieceJ)
	assert.False(t, g.CanPlace(o, 4, 29))
	assert.True(t, g.CanPlace(o, 6, 29))

	g.Place(monomino(PieceT), 7, 30, fixedMelt)
	assert.False(t, g.CanPlace(o, 6, 29), "ice blocks")

	clock.Advance(time.Second)
	assert.Equal(t, StageMiddle, g.Cell(7, 30).Stage)
	assert.False(t, g.CanPlace(o, 6, 29), "middle stage still blocks")

	clock.Advance(2 * time.Second)
	assert.Equal(t, StageMelted, g.Cell(7, 30).Stage)
	assert.True(t, g.CanPlace(o, 6, 29), "melted cells are empty")
}

func TestPlaceStartsTwoStageMelt(t *testing.T) {
	clock, g := newTestGrid()

	g.Place(monomino(PieceS), 2, 39, fixedMelt)
	c := g.Cell(2, 39)
	assert.Equal(t, CellDecaying, c.Kind)
	assert.Equal(t, PieceS, c.Piece)
	assert.Equal(t, StageIce, c.Stage)
	assert.Equal(t, time.Second, c.Deadline)

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, StageIce, g.Cell(2, 39).Stage)

	clock.Advance(time.Millisecond)
	c = g.Cell(2, 39)
	assert.Equal(t, StageMiddle, c.Stage)
	assert.Equal(t, 3*time.Second, c.Deadline)
	assert.True(t, g.Occupied(2, 39))

	clock.Advance(2 * time.Second)
	assert.Equal(t, StageMelted, g.Cell(2, 39).Stage)
	assert.False(t, g.Occupied(2, 39))
	assert.Equal(t, 0, clock.Pending())
}

func TestPlaceDrawsMeltPerCell(t *testing.T) {
	_, g := newTestGrid()
	melt := MeltOptions{
		Enabled:       true,
		IceToMiddle:   config.MeltRange{Base: time.Second, Range: time.Second},
		MiddleToWater: config.MeltRange{Base: time.Second},
	}

	g.Place(mustTetromino(t, PieceI), 0, 30, melt)
	g.Place(mustTetromino(t, PieceI), 4, 30, melt)

	deadlines := make(map[time.Duration]bool)
	for x := range 8 {
		c := g.Cell(x, 31)
		require.Equal(t, CellDecaying, c.Kind)
		assert.GreaterOrEqual(t, c.Deadline, time.Second)
		assert.Less(t, c.Deadline, 2*time.Second)
		deadlines[c.Deadline] = true
	}
	assert.Greater(t, len(deadlines), 1, "cells melt independently")
}

func TestPlaceWithoutMeltFills(t *testing.T) {
	clock, g := newTestGrid()
	g.Place(mustTetromino(t, PieceO), 0, 38, MeltOptions{})

	assert.Equal(t, CellFilled, g.Cell(0, 39).Kind)
	assert.Equal(t, 0, clock.Pending())
}

func TestDeleteRowsCompactsAndCancelsTimers(t *testing.T) {
	clock, g := newTestGrid()

	// Rows 3 and 5 are full of melting blocks; other rows hold one marker each.
	for _, y := range []int{3, 5} {
		for x := range Width {
			g.Place(monomino(PieceZ), x, y, fixedMelt)
		}
	}
	for _, y := range []int{0, 1, 2, 4, 6, 7, 8, 9} {
		g.Fill(y, y, PieceL)
	}
	require.Equal(t, 2*Width, clock.Pending())

	assert.Equal(t, 2, g.DeleteRows())
	assert.Equal(t, 0, clock.Pending(), "timers of cleared cells are cancelled")

	occupiedRow := func(y int) []int {
		var xs []int
		for x := range Width {
			if g.Occupied(x, y) {
				xs = append(xs, x)
			}
		}
		return xs
	}
	assert.Empty(t, occupiedRow(0))
	assert.Empty(t, occupiedRow(1))
	assert.Equal(t, []int{0}, occupiedRow(2))
	assert.Equal(t, []int{1}, occupiedRow(3))
	assert.Equal(t, []int{2}, occupiedRow(4))
	assert.Equal(t, []int{4}, occupiedRow(5))
	for y := 6; y <= 9; y++ {
		assert.Equal(t, []int{y}, occupiedRow(y), "row %d is below the cleared span", y)
	}

	fired := clock.Advance(time.Minute)
	assert.Equal(t, 0, fired)
}

func TestDeleteRowsTreatsMeltedAsEmpty(t *testing.T) {
	clock, g := newTestGrid()
	for x := range Width - 1 {
		g.Fill(x, 39, PieceI)
	}
	g.Place(monomino(PieceI), Width-1, 39, fixedMelt)
	clock.Advance(3 * time.Second)

	assert.Equal(t, 0, g.DeleteRows())
	assert.True(t, g.Occupied(0, 39))
}

func TestDeleteRowsNoneComplete(t *testing.T) {
	_, g := newTestGrid()
	g.Fill(0, 39, PieceI)
	assert.Equal(t, 0, g.DeleteRows())
	assert.True(t, g.Occupied(0, 39))
}

func TestSpawnBlocked(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"zone top-left", 3, HiddenHeight - 2, true},
		{"zone bottom-right", 6, HiddenHeight - 1, true},
		{"left of zone", 2, HiddenHeight - 1, false},
		{"right of zone", 7, HiddenHeight - 1, false},
		{"above zone", 4, HiddenHeight - 3, false},
		{"first visible row", 4, HiddenHeight, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, g := newTestGrid()
			g.Fill(tc.x, tc.y, PieceT)
			assert.Equal(t, tc.want, g.SpawnBlocked())
		})
	}
}

func TestOutOfRangeQueries(t *testing.T) {
	_, g := newTestGrid()
	assert.False(t, g.Occupied(-1, 0))
	assert.False(t, g.Occupied(0, Height))
	assert.Equal(t, CellEmpty, g.Cell(Width, 0).Kind)
	g.Fill(-3, -3, PieceI) // ignored
}
