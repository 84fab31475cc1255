package allocator

import (
	"errors"
	"fmt"

	"github.com/jakechorley/workshop-groups/pkg/core/model"
)

var (
	// ErrInvalidConfig is returned when the allocation config cannot be run
	ErrInvalidConfig = errors.New("invalid allocation config")

	// ErrPreassignmentOverCapacity is returned when preassigned participants alone exceed a group's capacity
	ErrPreassignmentOverCapacity = errors.New("preassignments exceed group capacity")
)

// Allocator holds the working state of one allocation run
type Allocator struct {
	config      AllocationConfig
	occupancy   Occupancy
	preassigned []*model.Participant
	placements  []Placement
}

// InitAllocation validates the config and builds an allocator with occupancy
// seeded from participants that are already assigned
func InitAllocation(config AllocationConfig) (*Allocator, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	allocator := &Allocator{
		config:      config,
		occupancy:   make(Occupancy, len(config.GroupNames)),
		preassigned: []*model.Participant{},
		placements:  []Placement{},
	}

	// Count preassigned participants before any round runs
	for _, p := range config.Registry.All() {
		group, ok := p.Group()
		if !ok {
			continue
		}
		if group >= len(config.GroupNames) {
			return nil, fmt.Errorf("%w: %s is preassigned to unknown group %d", ErrInvalidConfig, p.FullName(), group)
		}
		allocator.occupancy[group]++
		allocator.preassigned = append(allocator.preassigned, p)
	}

	for group, count := range allocator.occupancy {
		if count > config.Capacity {
			return nil, fmt.Errorf("%w: group %q has %d preassigned participants but capacity is %d",
				ErrPreassignmentOverCapacity, config.GroupNames[group], count, config.Capacity)
		}
	}

	return allocator, nil
}

// validateConfig checks the config before any state is touched
func validateConfig(config AllocationConfig) error {
	if config.Registry == nil {
		return fmt.Errorf("%w: registry is required", ErrInvalidConfig)
	}
	if config.Shuffler == nil {
		return fmt.Errorf("%w: shuffler is required", ErrInvalidConfig)
	}
	if config.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative (got %d)", ErrInvalidConfig, config.Capacity)
	}
	if config.MaxRank < 1 {
		return fmt.Errorf("%w: max rank must be at least 1 (got %d)", ErrInvalidConfig, config.MaxRank)
	}

	groupCount := len(config.GroupNames)
	for _, p := range config.Registry.All() {
		for rank, choice := range p.Choices {
			if choice < 0 || choice >= groupCount {
				return fmt.Errorf("%w: %s has choice %d at rank %d but there are %d groups",
					ErrInvalidConfig, p.FullName(), choice, rank+1, groupCount)
			}
		}
	}

	return nil
}

// Allocate places every unassigned participant into the highest-ranked group with room.
//
// The registry is shuffled once up front. Then each rank is processed as a round over
// all participants, so nobody's second choice can take a place that someone else's first
// choice could still have claimed. Within a round the shuffled order decides who gets
// the last place in a popular group. Participants whose first MaxRank choices are all
// full are left unassigned.
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {
	allocator, err := InitAllocation(config)
	if err != nil {
		return nil, err
	}

	// Shuffle exactly once per run, never per round
	config.Registry.Shuffle(config.Shuffler)
	order := config.Registry.Participants()

	for rank := 0; rank < config.MaxRank; rank++ {
		if err := allocator.runRound(rank, order); err != nil {
			return nil, err
		}
	}

	return allocator.buildOutcome(order), nil
}

// runRound offers every still-unassigned participant their choice at rank
func (a *Allocator) runRound(rank int, order []*model.Participant) error {
	for position, p := range order {
		if p.IsAssigned() {
			continue
		}

		group, ok := p.ChoiceAt(rank)
		if !ok {
			// Short preference list; nothing to try at this rank
			continue
		}

		if a.occupancy[group] >= a.config.Capacity {
			continue
		}

		if err := p.Assign(group); err != nil {
			return fmt.Errorf("failed to assign %s: %w", p.FullName(), err)
		}
		a.occupancy[group]++
		a.placements = append(a.placements, Placement{
			Participant: p,
			Group:       group,
			Rank:        rank,
			Position:    position,
		})
	}
	return nil
}

// buildOutcome creates the final allocation outcome report
func (a *Allocator) buildOutcome(order []*model.Participant) *AllocationOutcome {
	// Initialize with empty slices (not nil) for easier consumption
	outcome := &AllocationOutcome{
		Occupancy:        a.occupancy,
		Capacity:         a.config.Capacity,
		MaxRank:          a.config.MaxRank,
		ProcessingOrder:  order,
		Preassigned:      a.preassigned,
		Placements:       a.placements,
		Unassigned:       []*model.Participant{},
		ValidationErrors: []GroupValidationError{},
	}

	for _, p := range order {
		if !p.IsAssigned() {
			outcome.Unassigned = append(outcome.Unassigned, p)
		}
	}

	outcome.ValidationErrors = ValidateOutcome(outcome, a.config.GroupNames)
	outcome.Success = len(outcome.ValidationErrors) == 0

	return outcome
}
