package engine

// Tetromino is a live piece instance. Its shape changes on rotation;
// width and height come from the unrotated shape and never change.
type Tetromino struct {
	Type   PieceType
	shape  Shape
	width  int
	height int
}

// NewTetromino creates a piece of type p in its canonical orientation.
func NewTetromino(p PieceType) (*Tetromino, error) {
	shape, err := CanonicalShape(p)
	if err != nil {
		return nil, err
	}
	return &Tetromino{
		Type:   p,
		shape:  shape,
		width:  len(shape[0]),
		height: len(shape),
	}, nil
}

// Shape returns the current rotation matrix. Callers must not modify it.
func (t *Tetromino) Shape() Shape {
	return t.shape
}

func (t *Tetromino) Width() int  { return t.width }
func (t *Tetromino) Height() int { return t.height }

// Rotated returns the shape turned in dir without changing the piece.
func (t *Tetromino) Rotated(dir Direction) Shape {
	return Rotate(t.shape, dir)
}

func (t *Tetromino) setShape(s Shape) {
	t.shape = s
}

// ResetShape restores the canonical orientation.
func (t *Tetromino) ResetShape() {
	shape, _ := CanonicalShape(t.Type) // Type was validated by NewTetromino
	t.shape = shape
}
