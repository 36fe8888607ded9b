package engine

import "fmt"

// Queue is the fixed-length next-piece lookahead.
type Queue struct {
	items []*Tetromino
}

// NewQueue creates a queue holding initial in order. At least one piece is required.
func NewQueue(initial []*Tetromino) (*Queue, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("engine: new queue: %w", ErrEmptyQueue)
	}
	return &Queue{items: append([]*Tetromino(nil), initial...)}, nil
}

// Shift appends next and removes and returns the front piece,
// keeping the queue length constant.
func (q *Queue) Shift(next *Tetromino) (*Tetromino, error) {
	if len(q.items) == 0 {
		return nil, ErrEmptyQueue
	}
	q.items = append(q.items, next)
	front := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return front, nil
}

// Len returns the number of queued pieces.
func (q *Queue) Len() int {
	return len(q.items)
}

// Types returns the queued piece types, front first.
func (q *Queue) Types() []PieceType {
	out := make([]PieceType, len(q.items))
	for i, t := range q.items {
		out[i] = t.Type
	}
	return out
}
