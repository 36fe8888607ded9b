package engine

// Hold is the single-piece side slot. It may be used once per piece;
// placing a piece reactivates it.
type Hold struct {
	piece  *Tetromino
	active bool
}

// NewHold creates an empty, usable hold slot.
func NewHold() *Hold {
	return &Hold{active: true}
}

// Swap stores offered in canonical orientation and returns the previously
// held piece, which is nil when the slot was empty. ok is false, and
// nothing changes, when the slot was already used for the current piece.
func (h *Hold) Swap(offered *Tetromino) (prev *Tetromino, ok bool) {
	if !h.active {
		return nil, false
	}
	prev = h.piece
	offered.ResetShape()
	h.piece = offered
	h.active = false
	return prev, true
}

// Activate re-enables the slot after a piece locks.
func (h *Hold) Activate() {
	h.active = true
}

// Active reports whether Swap is currently allowed.
func (h *Hold) Active() bool {
	return h.active
}

// Piece returns the held piece or nil.
func (h *Hold) Piece() *Tetromino {
	return h.piece
}
