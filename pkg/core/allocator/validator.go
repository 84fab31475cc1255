package allocator

import (
	"fmt"

	"github.com/jakechorley/workshop-groups/pkg/core/model"
)

const (
	checkCapacity     = "Capacity"
	checkOccupancy    = "Occupancy"
	checkRankPriority = "RankPriority"
)

// GroupValidationError represents an invariant violation for a specific group
type GroupValidationError struct {
	GroupIndex  int
	GroupName   string
	CheckName   string
	Description string
}

func (e GroupValidationError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.GroupName, e.CheckName, e.Description)
}

// ValidateOutcome checks the final state of a run:
//   - no group is over capacity
//   - occupancy agrees with the recorded placements and preassignments
//   - no participant was turned away from a group that still had room at the rank they asked for it
//
// The last check replays the run from the recorded placements, so it also works on
// outcomes assembled by hand.
func ValidateOutcome(outcome *AllocationOutcome, groupNames []string) []GroupValidationError {
	var errors []GroupValidationError

	groupName := func(g int) string {
		if g >= 0 && g < len(groupNames) {
			return groupNames[g]
		}
		return fmt.Sprintf("group %d", g)
	}

	// Capacity
	for g, count := range outcome.Occupancy {
		if count > outcome.Capacity {
			errors = append(errors, GroupValidationError{
				GroupIndex:  g,
				GroupName:   groupName(g),
				CheckName:   checkCapacity,
				Description: fmt.Sprintf("Group is over capacity: has %d participants but capacity is %d", count, outcome.Capacity),
			})
		}
	}

	// Occupancy bookkeeping
	baseline := make([]int, len(outcome.Occupancy))
	for _, p := range outcome.Preassigned {
		if g, ok := p.Group(); ok && g < len(baseline) {
			baseline[g]++
		}
	}
	placementsByGroup := make(map[int][]Placement)
	for _, placement := range outcome.Placements {
		placementsByGroup[placement.Group] = append(placementsByGroup[placement.Group], placement)
	}
	for g, count := range outcome.Occupancy {
		expected := baseline[g] + len(placementsByGroup[g])
		if count != expected {
			errors = append(errors, GroupValidationError{
				GroupIndex:  g,
				GroupName:   groupName(g),
				CheckName:   checkOccupancy,
				Description: fmt.Sprintf("Occupancy is %d but %d participants are recorded in the group", count, expected),
			})
		}
	}

	// Rank priority
	placedRank := make(map[*model.Participant]int, len(outcome.Placements))
	for _, placement := range outcome.Placements {
		placedRank[placement.Participant] = placement.Rank
	}
	preassigned := make(map[*model.Participant]bool, len(outcome.Preassigned))
	for _, p := range outcome.Preassigned {
		preassigned[p] = true
	}

	// occupancyWhenConsidered counts who was in g before the participant at position
	// was offered g at rank
	occupancyWhenConsidered := func(g, rank, position int) int {
		count := 0
		if g < len(baseline) {
			count = baseline[g]
		}
		for _, placement := range placementsByGroup[g] {
			if placement.Rank < rank || (placement.Rank == rank && placement.Position < position) {
				count++
			}
		}
		return count
	}

	for position, p := range outcome.ProcessingOrder {
		if preassigned[p] {
			continue
		}

		// Ranks at which this participant was turned away
		lastRejectedRank := min(outcome.MaxRank, len(p.Choices))
		if rank, ok := placedRank[p]; ok {
			lastRejectedRank = rank
		}

		for rank := 0; rank < lastRejectedRank; rank++ {
			g := p.Choices[rank]
			if occupancyWhenConsidered(g, rank, position) < outcome.Capacity {
				errors = append(errors, GroupValidationError{
					GroupIndex: g,
					GroupName:  groupName(g),
					CheckName:  checkRankPriority,
					Description: fmt.Sprintf("%s was not placed at rank %d although the group had room",
						p.FullName(), rank+1),
				})
			}
		}
	}

	return errors
}
