package allocator

import (
	"github.com/jakechorley/workshop-groups/pkg/core/model"
	"github.com/jakechorley/workshop-groups/pkg/core/registry"
)

// AllocationConfig contains everything needed for one allocation run
type AllocationConfig struct {
	// Registry holds the participants to place. It is shuffled in place.
	Registry *registry.Registry

	// GroupNames defines the groups; a participant's Choices index into it
	GroupNames []string

	// Capacity is the maximum number of participants per group (0 leaves everyone unassigned)
	Capacity int

	// MaxRank is how many preference ranks are tried before giving up on a participant
	MaxRank int

	// Shuffler decides the processing order within a round
	Shuffler registry.Shuffler
}

// Occupancy counts the participants assigned to each group, indexed by group
type Occupancy []int

// Total returns the number of assigned participants across all groups
func (o Occupancy) Total() int {
	total := 0
	for _, count := range o {
		total += count
	}
	return total
}

// Remaining returns how many more participants group g can take under capacity
func (o Occupancy) Remaining(g, capacity int) int {
	return max(capacity-o[g], 0)
}

// Placement records a single assignment made during allocation
type Placement struct {
	Participant *model.Participant

	// Group is the index of the group the participant was placed in
	Group int

	// Rank is the preference rank that was granted (0 = first choice)
	Rank int

	// Position is the participant's index in the processing order
	Position int
}

// AllocationOutcome represents the result of an allocation run
type AllocationOutcome struct {
	// Occupancy is the final number of participants in each group
	Occupancy Occupancy

	// Capacity echoes the ceiling the run was made with
	Capacity int

	// MaxRank echoes the number of ranks the run considered
	MaxRank int

	// ProcessingOrder is the post-shuffle order participants were considered in
	ProcessingOrder []*model.Participant

	// Preassigned are participants that already had a group before the run
	Preassigned []*model.Participant

	// Placements lists every assignment made by the run in the order it was made
	Placements []Placement

	// Unassigned contains participants left without a group, in processing order
	Unassigned []*model.Participant

	// ValidationErrors contains any invariant violations found in the final state
	ValidationErrors []GroupValidationError

	// Success is true when the final state passed validation
	Success bool
}

// PlacementFor returns the placement made for p, if any
func (o *AllocationOutcome) PlacementFor(p *model.Participant) (Placement, bool) {
	for _, placement := range o.Placements {
		if placement.Participant == p {
			return placement, true
		}
	}
	return Placement{}, false
}

// RankCounts returns how many participants were granted each preference rank
func (o *AllocationOutcome) RankCounts() []int {
	counts := make([]int, o.MaxRank)
	for _, placement := range o.Placements {
		if placement.Rank < len(counts) {
			counts[placement.Rank]++
		}
	}
	return counts
}
