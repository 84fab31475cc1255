package allocator

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededShuffler_SameSeedSamePermutation(t *testing.T) {
	a := NewSeededShuffler(12345)
	b := NewSeededShuffler(12345)

	assert.Equal(t, a.Perm(20), b.Perm(20))
	assert.Equal(t, uint64(12345), a.Seed())
}

func TestSeededShuffler_ProducesPermutation(t *testing.T) {
	perm := NewSeededShuffler(3).Perm(10)

	sorted := slices.Clone(perm)
	slices.Sort(sorted)
	assert.Equal(t, IdentityShuffler{}.Perm(10), sorted)
}

func TestRandomShuffler_ReportsReproducibleSeed(t *testing.T) {
	s := NewRandomShuffler()
	replay := NewSeededShuffler(s.Seed())

	assert.Equal(t, s.Perm(15), replay.Perm(15))
}

func TestIdentityShuffler(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, IdentityShuffler{}.Perm(4))
	assert.Empty(t, IdentityShuffler{}.Perm(0))
}
