package engine

// kick is a candidate (dx, dy) offset tried during rotation. dy grows downward.
type kick struct{ dx, dy int }

// kickTable holds five ordered offsets per direction and destination
// rotation state.
type kickTable map[Direction][4][5]kick

var basicKicks = kickTable{
	Clockwise: {
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	},
	CounterClockwise: {
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	},
}

var iKicks = kickTable{
	Clockwise: {
		{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	},
	CounterClockwise: {
		{{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	},
}

// kicksFor returns the offsets for rotating a piece of type p from state in dir.
func kicksFor(p PieceType, state int, dir Direction) [5]kick {
	table := basicKicks
	if p == PieceI {
		table = iKicks
	}
	return table[dir][NextRotation(state, dir)]
}
