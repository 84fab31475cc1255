// Package registry holds the ordered participant collection the allocator works on.
package registry

import (
	"cmp"
	"iter"
	"slices"

	"github.com/jakechorley/workshop-groups/pkg/core/model"
)

// Shuffler produces a random permutation of [0, n)
type Shuffler interface {
	Perm(n int) []int
}

// Registry is a mutable ordered collection of participants
type Registry struct {
	participants []*model.Participant
}

// New creates a registry holding the given participants in order
func New(participants ...*model.Participant) *Registry {
	return &Registry{participants: slices.Clone(participants)}
}

// Add appends a participant
func (r *Registry) Add(p *model.Participant) {
	r.participants = append(r.participants, p)
}

// Size returns the number of participants
func (r *Registry) Size() int {
	return len(r.participants)
}

// SortByCohortThenName orders participants by cohort, then last name, then first name.
// Participants equal on all three keys keep their current relative order.
func (r *Registry) SortByCohortThenName() {
	slices.SortStableFunc(r.participants, func(a, b *model.Participant) int {
		return cmp.Or(
			cmp.Compare(a.Cohort, b.Cohort),
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
		)
	})
}

// Shuffle reorders the participants using the permutation produced by s
func (r *Registry) Shuffle(s Shuffler) {
	perm := s.Perm(len(r.participants))
	shuffled := make([]*model.Participant, len(r.participants))
	for i, j := range perm {
		shuffled[i] = r.participants[j]
	}
	r.participants = shuffled
}

// Filter returns a new registry with the participants matching pred, in the same order
func (r *Registry) Filter(pred func(*model.Participant) bool) *Registry {
	filtered := &Registry{participants: make([]*model.Participant, 0)}
	for _, p := range r.participants {
		if pred(p) {
			filtered.participants = append(filtered.participants, p)
		}
	}
	return filtered
}

// All iterates over the participants in their current order
func (r *Registry) All() iter.Seq2[int, *model.Participant] {
	return func(yield func(int, *model.Participant) bool) {
		for i, p := range r.participants {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Participants returns a copy of the current ordering
func (r *Registry) Participants() []*model.Participant {
	return slices.Clone(r.participants)
}

// InGroup matches participants assigned to the given group
func InGroup(group int) func(*model.Participant) bool {
	return func(p *model.Participant) bool {
		g, ok := p.Group()
		return ok && g == group
	}
}

// InCohort matches participants in the given cohort
func InCohort(cohort int) func(*model.Participant) bool {
	return func(p *model.Participant) bool {
		return p.Cohort == cohort
	}
}

// Unassigned matches participants that have not been placed
func Unassigned() func(*model.Participant) bool {
	return func(p *model.Participant) bool {
		return !p.IsAssigned()
	}
}
