package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestField(t *testing.T, p PieceType) *Field {
	t.Helper()
	_, g := newTestGrid()
	f := NewField(g)
	f.Spawn(mustTetromino(t, p))
	return f
}

func TestSpawnPosition(t *testing.T) {
	tests := []struct {
		piece PieceType
		x     int
	}{
		{PieceI, 3},
		{PieceO, 4},
		{PieceT, 3},
		{PieceS, 3},
	}
	for _, tc := range tests {
		f := newTestField(t, tc.piece)
		p := f.Piece()
		assert.Equal(t, tc.x, p.X, "%s spawn column", tc.piece)
		assert.Equal(t, HiddenHeight-2, p.Y)
		assert.Equal(t, 0, p.Rotation)
	}
}

func TestRotateThenBackOnEmptyField(t *testing.T) {
	for _, piece := range AllPieces {
		for start := range 4 {
			for _, dir := range []Direction{Clockwise, CounterClockwise} {
				f := newTestField(t, piece)
				require.True(t, f.MoveTetromino(0, 8))
				for range start {
					require.True(t, f.RotateTetromino(Clockwise))
				}
				before := f.Piece()
				shape := before.Tetromino.Shape().Clone()

				require.True(t, f.RotateTetromino(dir))
				require.True(t, f.RotateTetromino(-dir))

				after := f.Piece()
				assert.Equal(t, before.X, after.X, "%s from %d", piece, start)
				assert.Equal(t, before.Y, after.Y, "%s from %d", piece, start)
				assert.Equal(t, before.Rotation, after.Rotation)
				assert.True(t, shape.Equal(after.Tetromino.Shape()), "%s from %d", piece, start)
			}
		}
	}
}

func TestMoveBlockedByWall(t *testing.T) {
	f := newTestField(t, PieceO)
	moves := 0
	for f.MoveTetromino(-1, 0) {
		moves++
	}
	assert.Equal(t, 4, moves)
	assert.Equal(t, 0, f.Piece().X)
	assert.False(t, f.MoveTetromino(-1, 0))
}

func TestWallKickOffLeftWall(t *testing.T) {
	f := newTestField(t, PieceT)
	require.True(t, f.RotateTetromino(Clockwise))
	for f.MoveTetromino(-1, 0) {
	}
	// Pointing right, the empty left column hangs outside the grid.
	require.Equal(t, -1, f.Piece().X)

	require.True(t, f.RotateTetromino(Clockwise))
	p := f.Piece()
	assert.Equal(t, 0, p.X, "kicked one column right")
	assert.Equal(t, 2, p.Rotation)
}

func TestRotationBlockedChangesNothing(t *testing.T) {
	f := newTestField(t, PieceI)
	require.True(t, f.MoveTetromino(0, Height-2-f.Piece().Y))
	p := f.Piece()

	// Fill everything except the piece's own row segment.
	for y := range Height {
		for x := range Width {
			if y == p.Y+1 && x >= p.X && x < p.X+4 {
				continue
			}
			f.Grid().Fill(x, y, PieceZ)
		}
	}
	shape := p.Tetromino.Shape().Clone()

	assert.False(t, f.RotateTetromino(Clockwise))
	assert.False(t, f.RotateTetromino(CounterClockwise))

	after := f.Piece()
	assert.Equal(t, p.X, after.X)
	assert.Equal(t, p.Y, after.Y)
	assert.Equal(t, 0, after.Rotation)
	assert.True(t, shape.Equal(after.Tetromino.Shape()))
}

func TestHardDropPosition(t *testing.T) {
	f := newTestField(t, PieceO)
	assert.Equal(t, Height-2, f.HardDropPosition())

	f.Grid().Fill(4, 30, PieceI)
	assert.Equal(t, 28, f.HardDropPosition())
	assert.Equal(t, HiddenHeight-2, f.Piece().Y, "preview does not move the piece")

	assert.Equal(t, 28-(HiddenHeight-2), f.Drop())
	assert.Equal(t, 28, f.Piece().Y)
	assert.False(t, f.CanDescend())
}

func TestKickTablesAreComplete(t *testing.T) {
	pairs := 0
	for _, table := range []kickTable{basicKicks, iKicks} {
		for _, dir := range []Direction{Clockwise, CounterClockwise} {
			for state := range 4 {
				kicks := table[dir][state]
				assert.Equal(t, kick{0, 0}, kicks[0], "first offset is always in place")
				pairs += len(kicks)
			}
		}
	}
	assert.Equal(t, 80, pairs)
}
