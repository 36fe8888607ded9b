package engine

import "time"

// CellView is the read-only rendering state of one grid cell.
type CellView struct {
	Kind  CellKind
	Piece PieceType
	Stage MeltStage
}

// Empty reports whether the cell shows nothing, melted cells included.
func (c CellView) Empty() bool {
	return c.Kind == CellEmpty || (c.Kind == CellDecaying && c.Stage == StageMelted)
}

// PieceView describes the active piece. X and Y are grid coordinates;
// subtract HiddenHeight from Y for visible rows.
type PieceView struct {
	Type     PieceType
	Shape    Shape
	X, Y     int
	Rotation int
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Phase  Phase
	Paused bool

	// Rows holds the visible part of the grid, top row first.
	Rows [VisibleHeight][Width]CellView

	HasPiece bool
	Piece    PieceView
	GhostY   int // Hard-drop landing row of the active piece, grid coordinates

	HasHold    bool
	Hold       PieceType
	HoldActive bool

	Next []PieceType

	Progress Progression
	Elapsed  time.Duration

	LockActive   bool
	LockProgress float64

	// Result is set on the game-over screen.
	Result *RoundResult
}

// Snapshot captures the session state.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.fill(&snap)
	return snap
}

func (s *Session) fill(snap *Snapshot) {
	grid := s.field.Grid()
	for y := range VisibleHeight {
		for x := range Width {
			c := grid.Cell(x, y+HiddenHeight)
			snap.Rows[y][x] = CellView{Kind: c.Kind, Piece: c.Piece, Stage: c.Stage}
		}
	}

	if p := s.field.Piece(); p.Tetromino != nil && !s.Over() {
		snap.HasPiece = true
		snap.Piece = PieceView{
			Type:     p.Tetromino.Type,
			Shape:    p.Tetromino.Shape().Clone(),
			X:        p.X,
			Y:        p.Y,
			Rotation: p.Rotation,
		}
		snap.GhostY = s.field.HardDropPosition()
	}

	if held := s.hold.Piece(); held != nil {
		snap.HasHold = true
		snap.Hold = held.Type
	}
	snap.HoldActive = s.hold.Active()
	snap.Next = s.queue.Types()

	snap.Progress = s.Progress()
	snap.Elapsed = s.Elapsed()
	snap.LockActive = s.lock.Active()
	snap.LockProgress = s.lock.Progress()
}
