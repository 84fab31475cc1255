package registry

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/workshop-groups/pkg/core/model"
)

// fixedShuffler returns a predetermined permutation
type fixedShuffler struct {
	perm []int
}

func (f fixedShuffler) Perm(n int) []int {
	return f.perm
}

// pcgShuffler is a seeded uniform shuffler
type pcgShuffler struct {
	rng *rand.Rand
}

func (s pcgShuffler) Perm(n int) []int {
	return s.rng.Perm(n)
}

func names(r *Registry) []string {
	out := make([]string, 0, r.Size())
	for _, p := range r.All() {
		out = append(out, p.FullName())
	}
	return out
}

func TestAddAndSize(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Size())

	r.Add(model.NewParticipant("Ada", "Lovelace", 10, nil))
	r.Add(model.NewParticipant("Alan", "Turing", 9, nil))

	assert.Equal(t, 2, r.Size())
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, names(r))
}

func TestNew_CopiesInputSlice(t *testing.T) {
	input := []*model.Participant{
		model.NewParticipant("Ada", "Lovelace", 10, nil),
		model.NewParticipant("Alan", "Turing", 9, nil),
	}
	r := New(input...)

	r.SortByCohortThenName()

	// Caller's slice is untouched
	assert.Equal(t, "Ada", input[0].FirstName)
	assert.Equal(t, "Alan", r.Participants()[0].FirstName)
}

func TestSortByCohortThenName(t *testing.T) {
	r := New(
		model.NewParticipant("Zoe", "Adams", 11, nil),
		model.NewParticipant("Bob", "Young", 9, nil),
		model.NewParticipant("Amy", "Young", 9, nil),
		model.NewParticipant("Carl", "Brown", 9, nil),
		model.NewParticipant("Abe", "Adams", 11, nil),
	)

	r.SortByCohortThenName()

	assert.Equal(t, []string{
		"Carl Brown",
		"Amy Young",
		"Bob Young",
		"Abe Adams",
		"Zoe Adams",
	}, names(r))
}

func TestSortByCohortThenName_IdenticalKeysKeepOrder(t *testing.T) {
	first := model.NewParticipant("Sam", "Lee", 10, []int{0})
	second := model.NewParticipant("Sam", "Lee", 10, []int{1})
	r := New(model.NewParticipant("Ann", "Lee", 12, nil), first, second)

	r.SortByCohortThenName()

	ps := r.Participants()
	assert.Same(t, first, ps[0])
	assert.Same(t, second, ps[1])
}

func TestShuffle_AppliesPermutation(t *testing.T) {
	a := model.NewParticipant("A", "A", 9, nil)
	b := model.NewParticipant("B", "B", 9, nil)
	c := model.NewParticipant("C", "C", 9, nil)
	r := New(a, b, c)

	r.Shuffle(fixedShuffler{perm: []int{2, 0, 1}})

	ps := r.Participants()
	assert.Same(t, c, ps[0])
	assert.Same(t, a, ps[1])
	assert.Same(t, b, ps[2])
}

func TestShuffle_EveryPermutationReachable(t *testing.T) {
	seen := make(map[string]bool)
	rng := rand.New(rand.NewPCG(1, 2))

	for range 500 {
		r := New(
			model.NewParticipant("A", "A", 9, nil),
			model.NewParticipant("B", "B", 9, nil),
			model.NewParticipant("C", "C", 9, nil),
		)
		r.Shuffle(pcgShuffler{rng: rng})

		order := make([]string, 0, 3)
		for _, p := range r.All() {
			order = append(order, p.FirstName)
		}
		seen[strings.Join(order, "")] = true

		// Membership is preserved
		require.Equal(t, 3, r.Size())
	}

	assert.Len(t, seen, 6, "all 3! orderings should appear")
}

func TestFilter_DoesNotMutateSource(t *testing.T) {
	a := model.NewParticipant("A", "A", 9, nil)
	b := model.NewParticipant("B", "B", 10, nil)
	c := model.NewParticipant("C", "C", 9, nil)
	r := New(a, b, c)

	filtered := r.Filter(InCohort(9))

	assert.Equal(t, []string{"A A", "C C"}, names(filtered))
	assert.Equal(t, 3, r.Size())

	// Participants are shared, not copied
	require.NoError(t, filtered.Participants()[0].Assign(1))
	assert.True(t, a.IsAssigned())
}

func TestFilter_NoMatchesReturnsEmptyRegistry(t *testing.T) {
	r := New(model.NewParticipant("A", "A", 9, nil))

	filtered := r.Filter(InCohort(12))

	require.NotNil(t, filtered)
	assert.Equal(t, 0, filtered.Size())
}

func TestPredicates(t *testing.T) {
	placed := model.NewParticipant("A", "A", 9, []int{1})
	require.NoError(t, placed.Assign(1))
	waiting := model.NewParticipant("B", "B", 9, []int{1})
	r := New(placed, waiting)

	assert.Equal(t, []string{"A A"}, names(r.Filter(InGroup(1))))
	assert.Empty(t, names(r.Filter(InGroup(0))))
	assert.Equal(t, []string{"B B"}, names(r.Filter(Unassigned())))
}

func TestAll_StopsEarly(t *testing.T) {
	r := New(
		model.NewParticipant("A", "A", 9, nil),
		model.NewParticipant("B", "B", 9, nil),
	)

	count := 0
	for range r.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
