// Package rng provides the random-source capability for the game core.
// The core never touches math/rand directly; it draws through the Source
// interface so tests can substitute a scripted sequence.
package rng

import "math/rand"

// Source produces the random draws the board needs.
type Source interface {
	// IntN returns a uniform draw in [low, high], both bounds inclusive.
	IntN(low, high int) int

	// Perm returns a random permutation of the values 1..n.
	Perm(n int) []int
}

// Rand is a seedable Source backed by math/rand.
type Rand struct {
	r *rand.Rand
}

// New returns a Rand seeded with the given value. The same seed yields the
// same draw sequence, which is how deterministic test runs are produced.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// IntN returns a uniform draw in [low, high] inclusive.
func (r *Rand) IntN(low, high int) int {
	return low + r.r.Intn(high-low+1)
}

// Perm returns a random permutation of 1..n.
func (r *Rand) Perm(n int) []int {
	vals := r.r.Perm(n)
	for i := range vals {
		vals[i]++
	}
	return vals
}
