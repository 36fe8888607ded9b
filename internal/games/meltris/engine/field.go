package engine

// ActivePiece is the falling piece and its position in grid coordinates.
// Y may point into the hidden buffer rows.
type ActivePiece struct {
	Tetromino *Tetromino
	X, Y      int
	Rotation  int
}

// Field combines the active piece with the grid it moves against.
type Field struct {
	grid  *Grid
	piece ActivePiece
}

// NewField creates a field over grid with no active piece.
func NewField(grid *Grid) *Field {
	return &Field{grid: grid}
}

// Grid returns the underlying placed grid.
func (f *Field) Grid() *Grid {
	return f.grid
}

// Piece returns the active piece.
func (f *Field) Piece() ActivePiece {
	return f.piece
}

// SpawnPosition returns where a piece of the given width enters the field.
func SpawnPosition(width int) (x, y int) {
	return (Width+width)/2 - width, HiddenHeight - 2
}

// Spawn makes t the active piece at its spawn position in rotation state 0.
func (f *Field) Spawn(t *Tetromino) {
	x, y := SpawnPosition(t.Width())
	f.piece = ActivePiece{Tetromino: t, X: x, Y: y}
}

// MoveTetromino translates the piece by (dx, dy) if the target is free.
func (f *Field) MoveTetromino(dx, dy int) bool {
	p := &f.piece
	if p.Tetromino == nil || !f.grid.CanPlace(p.Tetromino.Shape(), p.X+dx, p.Y+dy) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}

// RotateTetromino tries the rotated shape at each SRS kick offset in order
// and commits the first that fits. Returns false and changes nothing when
// every offset is blocked.
func (f *Field) RotateTetromino(dir Direction) bool {
	p := &f.piece
	if p.Tetromino == nil {
		return false
	}
	rotated := p.Tetromino.Rotated(dir)
	for _, k := range kicksFor(p.Tetromino.Type, p.Rotation, dir) {
		if f.grid.CanPlace(rotated, p.X+k.dx, p.Y+k.dy) {
			p.X += k.dx
			p.Y += k.dy
			p.Tetromino.setShape(rotated)
			p.Rotation = NextRotation(p.Rotation, dir)
			return true
		}
	}
	return false
}

// HardDropPosition returns the lowest Y the piece can reach by falling straight down.
func (f *Field) HardDropPosition() int {
	p := f.piece
	if p.Tetromino == nil {
		return p.Y
	}
	y := p.Y
	for f.grid.CanPlace(p.Tetromino.Shape(), p.X, y+1) {
		y++
	}
	return y
}

// CanDescend reports whether the piece can move one row down.
func (f *Field) CanDescend() bool {
	p := f.piece
	return p.Tetromino != nil && f.grid.CanPlace(p.Tetromino.Shape(), p.X, p.Y+1)
}

// Drop moves the piece to its hard-drop position.
func (f *Field) Drop() int {
	y := f.HardDropPosition()
	dist := y - f.piece.Y
	f.piece.Y = y
	return dist
}
