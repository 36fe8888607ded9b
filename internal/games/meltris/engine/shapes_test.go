package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateClockwiseT(t *testing.T) {
	shape, err := CanonicalShape(PieceT)
	require.NoError(t, err)

	assert.Equal(t, Shape{
		{false, true, false},
		{false, true, true},
		{false, true, false},
	}, Rotate(shape, Clockwise))

	assert.Equal(t, Shape{
		{false, true, false},
		{true, true, false},
		{false, true, false},
	}, Rotate(shape, CounterClockwise))
}

func TestRotateRoundTrip(t *testing.T) {
	for _, p := range AllPieces {
		t.Run(p.String(), func(t *testing.T) {
			shape, err := CanonicalShape(p)
			require.NoError(t, err)

			assert.True(t, shape.Equal(Rotate(Rotate(shape, Clockwise), CounterClockwise)))
			assert.True(t, shape.Equal(Rotate(Rotate(shape, CounterClockwise), Clockwise)))

			full := shape
			for range 4 {
				full = Rotate(full, Clockwise)
			}
			assert.True(t, shape.Equal(full), "four quarter turns return the original")
		})
	}
}

func TestNextRotationWraps(t *testing.T) {
	assert.Equal(t, 1, NextRotation(0, Clockwise))
	assert.Equal(t, 0, NextRotation(3, Clockwise))
	assert.Equal(t, 3, NextRotation(0, CounterClockwise))
	assert.Equal(t, 2, NextRotation(3, CounterClockwise))
}

func TestShapeLibrary(t *testing.T) {
	sizes := map[PieceType]int{
		PieceI: 4, PieceO: 2, PieceS: 3, PieceZ: 3, PieceJ: 3, PieceL: 3, PieceT: 3,
	}
	for _, p := range AllPieces {
		shape, err := CanonicalShape(p)
		require.NoError(t, err)
		assert.Len(t, shape, sizes[p], "%s height", p)

		cells := 0
		shape.Cells(func(int, int) { cells++ })
		assert.Equal(t, 4, cells, "%s has four cells", p)
		assert.NotEmpty(t, p.Hex())
	}

	shape, _ := CanonicalShape(PieceI)
	shape[1][0] = false
	fresh, _ := CanonicalShape(PieceI)
	assert.True(t, fresh[1][0], "CanonicalShape returns a copy")
}

func TestUnknownPiece(t *testing.T) {
	_, err := CanonicalShape(PieceType(42))
	assert.ErrorIs(t, err, ErrUnknownPiece)

	_, err = NewTetromino(PieceType(-1))
	assert.ErrorIs(t, err, ErrUnknownPiece)

	_, err = ParsePieceType("X")
	assert.ErrorIs(t, err, ErrUnknownPiece)

	p, err := ParsePieceType("L")
	require.NoError(t, err)
	assert.Equal(t, PieceL, p)
}

func TestTetrominoKeepsBoundingBox(t *testing.T) {
	tm, err := NewTetromino(PieceI)
	require.NoError(t, err)
	assert.Equal(t, 4, tm.Width())
	assert.Equal(t, 4, tm.Height())

	tm.setShape(tm.Rotated(Clockwise))
	assert.Equal(t, 4, tm.Width())

	tm.ResetShape()
	canonical, _ := CanonicalShape(PieceI)
	assert.True(t, canonical.Equal(tm.Shape()))
}

func TestBagDealsEveryPieceOncePerSeven(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(7)))

	for round := range 20 {
		seen := make(map[PieceType]int)
		for range PieceCount {
			seen[bag.Next()]++
		}
		assert.Len(t, seen, PieceCount, "bag %d", round)
		for p, n := range seen {
			assert.Equal(t, 1, n, "bag %d dealt %s twice", round, p)
		}
		assert.Equal(t, 0, bag.Remaining())
	}
}

func TestQueue(t *testing.T) {
	_, err := NewQueue(nil)
	assert.ErrorIs(t, err, ErrEmptyQueue)

	_, err = (&Queue{}).Shift(mustTetromino(t, PieceI))
	assert.ErrorIs(t, err, ErrEmptyQueue)

	q, err := NewQueue([]*Tetromino{
		mustTetromino(t, PieceI),
		mustTetromino(t, PieceO),
		mustTetromino(t, PieceT),
	})
	require.NoError(t, err)

	front, err := q.Shift(mustTetromino(t, PieceS))
	require.NoError(t, err)
	assert.Equal(t, PieceI, front.Type)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []PieceType{PieceO, PieceT, PieceS}, q.Types())
}

func TestHoldGate(t *testing.T) {
	h := NewHold()
	first := mustTetromino(t, PieceT)
	first.setShape(first.Rotated(Clockwise))

	prev, ok := h.Swap(first)
	assert.True(t, ok)
	assert.Nil(t, prev)
	assert.False(t, h.Active())

	canonical, _ := CanonicalShape(PieceT)
	assert.True(t, canonical.Equal(h.Piece().Shape()), "held piece is reset to its canonical shape")

	prev, ok = h.Swap(mustTetromino(t, PieceO))
	assert.False(t, ok, "second hold before a lock is a no-op")
	assert.Nil(t, prev)
	assert.Equal(t, PieceT, h.Piece().Type)

	h.Activate()
	prev, ok = h.Swap(mustTetromino(t, PieceO))
	assert.True(t, ok)
	assert.Equal(t, PieceT, prev.Type)
	assert.Equal(t, PieceO, h.Piece().Type)
}

func TestLineScore(t *testing.T) {
	tests := []struct {
		name                string
		lines, level, combo int
		want                int
	}{
		{"single", 1, 1, NoCombo, 100},
		{"double at level 2", 2, 2, 0, 600},
		{"triple", 3, 1, 0, 500},
		{"tetris at level 3 with combo 2", 4, 3, 2, 2500},
		{"five rows are not scored", 5, 1, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LineScore(tc.lines, tc.level, tc.combo))
		})
	}
}

func mustTetromino(t *testing.T, p PieceType) *Tetromino {
	t.Helper()
	tm, err := NewTetromino(p)
	require.NoError(t, err)
	return tm
}
