package collections

import (
	"math/rand/v2"
	"slices"
)

// Shuffled is a fixed set of items whose iteration order is
// re-randomized on every iteration.
type Shuffled[T any] struct {
	items []T
	rng   *rand.Rand
}

// NewShuffled copies items into a Shuffled view driven by rng.
func NewShuffled[T any](items []T, rng *rand.Rand) *Shuffled[T] {
	return &Shuffled[T]{items: slices.Clone(items), rng: rng}
}

// Len returns the number of items.
func (s *Shuffled[T]) Len() int {
	return len(s.items)
}

// Items returns all items in a fresh random order. Each call draws a
// new permutation from the rng.
func (s *Shuffled[T]) Items() []T {
	out := slices.Clone(s.items)
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// ForEach visits every item exactly once in a fresh random order.
func (s *Shuffled[T]) ForEach(fn func(item T)) {
	for _, item := range s.Items() {
		fn(item)
	}
}
