package engine

import "math/rand"

// Bag is a 7-bag randomizer: every run of seven draws that starts on a
// bag boundary contains each piece exactly once.
type Bag struct {
	rng   *rand.Rand
	dealt uint8 // bit i set once AllPieces[i] was dealt from the current bag
}

const fullBag = 1<<PieceCount - 1

// NewBag creates a bag drawing from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// Next draws the next piece type.
func (b *Bag) Next() PieceType {
	if b.dealt == fullBag {
		b.dealt = 0
	}
	for {
		i := b.rng.Intn(PieceCount)
		if b.dealt&(1<<i) == 0 {
			b.dealt |= 1 << i
			return AllPieces[i]
		}
	}
}

// Remaining returns how many pieces are left in the current bag.
func (b *Bag) Remaining() int {
	n := PieceCount
	for i := range PieceCount {
		if b.dealt&(1<<i) != 0 {
			n--
		}
	}
	return n
}
