package allocator

import "math/rand/v2"

// SeededShuffler produces uniform random permutations from a reproducible seed
type SeededShuffler struct {
	seed uint64
	rng  *rand.Rand
}

// NewSeededShuffler creates a shuffler whose permutations are fixed by seed
func NewSeededShuffler(seed uint64) *SeededShuffler {
	return &SeededShuffler{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed)),
	}
}

// NewRandomShuffler creates a shuffler with a freshly drawn seed.
// The seed can be read back with Seed to reproduce the run.
func NewRandomShuffler() *SeededShuffler {
	return NewSeededShuffler(rand.Uint64())
}

// Perm returns a random permutation of [0, n)
func (s *SeededShuffler) Perm(n int) []int {
	return s.rng.Perm(n)
}

// Seed returns the seed this shuffler was created with
func (s *SeededShuffler) Seed() uint64 {
	return s.seed
}

// IdentityShuffler leaves the order untouched
type IdentityShuffler struct{}

// Perm returns [0, 1, ..., n-1]
func (IdentityShuffler) Perm(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}
