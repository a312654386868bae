package engine

import "math/rand"

// Bag is the 7-bag randomizer: each run of seven draws, starting at a bag
// boundary, contains every kind exactly once in shuffled order.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates a bag drawing its shuffles from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{
		rng:   rng,
		queue: make([]Kind, 0, kindCount),
	}
}

// Next pops the next kind, refilling and shuffling the bag when it is empty.
func (b *Bag) Next() Kind {
	if len(b.queue) == 0 {
		b.refill()
	}
	k := b.queue[len(b.queue)-1]
	b.queue = b.queue[:len(b.queue)-1]
	return k
}

// remaining returns how many kinds are left before the next refill.
func (b *Bag) remaining() int {
	return len(b.queue)
}

func (b *Bag) refill() {
	b.queue = append(b.queue[:0], Kinds()...)
	b.rng.Shuffle(len(b.queue), func(i, j int) {
		b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
	})
}
