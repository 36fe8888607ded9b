// Package engine implements the meltris simulation: piece geometry and SRS
// rotation, the placed grid with melting blocks, lock delay, hold, the next
// queue, scoring and the round state machine.
//
// The engine is driven entirely by a virtual timer.Clock. It never draws;
// hosts read a Snapshot after each step.
package engine

import "fmt"

// PieceType identifies one of the seven tetrominoes.
type PieceType int8

const (
	PieceI PieceType = iota
	PieceO
	PieceS
	PieceZ
	PieceJ
	PieceL
	PieceT
)

// PieceCount is the number of distinct piece types.
const PieceCount = 7

// AllPieces lists every piece type in library order.
var AllPieces = [PieceCount]PieceType{PieceI, PieceO, PieceS, PieceZ, PieceJ, PieceL, PieceT}

// Shape is a square occupancy matrix indexed [row][col].
type Shape [][]bool

type pieceInfo struct {
	name  string
	hex   string
	shape [][]int
}

var library = [PieceCount]pieceInfo{
	PieceI: {"I", "#0ff", [][]int{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}},
	PieceO: {"O", "#ff0", [][]int{
		{1, 1},
		{1, 1},
	}},
	PieceS: {"S", "#0f0", [][]int{
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	}},
	PieceZ: {"Z", "#f00", [][]int{
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	}},
	PieceJ: {"J", "#00f", [][]int{
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	}},
	PieceL: {"L", "#ff7f00", [][]int{
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	}},
	PieceT: {"T", "#f0f", [][]int{
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	}},
}

// Valid reports whether p is part of the shape library.
func (p PieceType) Valid() bool {
	return p >= 0 && int(p) < PieceCount
}

// String returns the single-letter name of the piece.
func (p PieceType) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PieceType(%d)", int(p))
	}
	return library[p].name
}

// Hex returns the piece's appearance as a CSS-style hex color.
func (p PieceType) Hex() string {
	if !p.Valid() {
		return ""
	}
	return library[p].hex
}

// ParsePieceType looks up a piece by its letter.
func ParsePieceType(name string) (PieceType, error) {
	for _, p := range AllPieces {
		if library[p].name == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPiece, name)
}

// CanonicalShape returns a fresh copy of the unrotated shape of p.
func CanonicalShape(p PieceType) (Shape, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPiece, int(p))
	}
	src := library[p].shape
	s := make(Shape, len(src))
	for row := range src {
		s[row] = make([]bool, len(src[row]))
		for col, v := range src[row] {
			s[row][col] = v != 0
		}
	}
	return s, nil
}

// Direction is a rotation direction: +1 clockwise, -1 counter-clockwise.
type Direction int8

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Rotate returns s turned a quarter in dir. s is not modified.
func Rotate(s Shape, dir Direction) Shape {
	h := len(s)
	if h == 0 {
		return Shape{}
	}
	w := len(s[0])

	out := make(Shape, w)
	for row := range out {
		out[row] = make([]bool, h)
		for col := range out[row] {
			if dir == Clockwise {
				out[row][col] = s[h-1-col][row]
			} else {
				out[row][col] = s[col][w-1-row]
			}
		}
	}
	return out
}

// NextRotation advances a rotation state in 0..3 by dir, wrapping at both ends.
func NextRotation(state int, dir Direction) int {
	return ((state+int(dir))%4 + 4) % 4
}

// Clone returns a deep copy of s.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for row := range s {
		out[row] = append([]bool(nil), s[row]...)
	}
	return out
}

// Equal reports whether two shapes have identical occupancy.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for row := range s {
		if len(s[row]) != len(o[row]) {
			return false
		}
		for col := range s[row] {
			if s[row][col] != o[row][col] {
				return false
			}
		}
	}
	return true
}

// Cells calls fn for every occupied cell of s.
func (s Shape) Cells(fn func(row, col int)) {
	for row := range s {
		for col, filled := range s[row] {
			if filled {
				fn(row, col)
			}
		}
	}
}
