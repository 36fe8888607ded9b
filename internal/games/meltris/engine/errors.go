package engine

import "errors"

var (
	// ErrUnknownPiece is returned when a piece type outside the shape library is requested.
	ErrUnknownPiece = errors.New("engine: unknown piece type")

	// ErrEmptyQueue is returned when a next queue is built or shifted with no pieces.
	ErrEmptyQueue = errors.New("engine: next queue is empty")
)
