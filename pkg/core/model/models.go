package model

import (
	"errors"
	"fmt"
)

// Unassigned is the group index of a participant who has not been placed
const Unassigned = -1

// ErrAlreadyAssigned is returned when a participant is assigned a second time
var ErrAlreadyAssigned = errors.New("participant already assigned")

// Participant represents one survey respondent waiting to be placed into a group
type Participant struct {
	FirstName string
	LastName  string

	// Cohort is the grade level the participant belongs to (e.g. 9 for freshmen)
	Cohort int

	// Choices holds group indices ordered from most to least preferred.
	// May be shorter than the number of groups when answers were left blank.
	Choices []int

	group    int
	assigned bool
}

// NewParticipant creates an unassigned participant
func NewParticipant(firstName, lastName string, cohort int, choices []int) *Participant {
	return &Participant{
		FirstName: firstName,
		LastName:  lastName,
		Cohort:    cohort,
		Choices:   choices,
	}
}

// Assign places the participant into a group.
// A participant can only be assigned once; later calls return ErrAlreadyAssigned.
func (p *Participant) Assign(group int) error {
	if group < 0 {
		return fmt.Errorf("invalid group index %d", group)
	}
	if p.IsAssigned() {
		return fmt.Errorf("%s: %w", p.FullName(), ErrAlreadyAssigned)
	}
	p.group = group
	p.assigned = true
	return nil
}

// Group returns the assigned group index, and false if the participant is unassigned
func (p *Participant) Group() (int, bool) {
	if !p.IsAssigned() {
		return Unassigned, false
	}
	return p.group, true
}

// IsAssigned reports whether the participant has been placed into a group
func (p *Participant) IsAssigned() bool {
	return p.assigned
}

// ChoiceAt returns the group the participant ranked at the given position
func (p *Participant) ChoiceAt(rank int) (int, bool) {
	if rank < 0 || rank >= len(p.Choices) {
		return 0, false
	}
	return p.Choices[rank], true
}

// RankOf returns the position of group in the participant's preference list, or -1
func (p *Participant) RankOf(group int) int {
	for rank, choice := range p.Choices {
		if choice == group {
			return rank
		}
	}
	return -1
}

// FullName returns "First Last"
func (p *Participant) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p *Participant) String() string {
	return p.FullName()
}

// SurveyResponses is the parsed content of a preference survey
type SurveyResponses struct {
	// GroupNames defines the group indices used by every participant's Choices
	GroupNames []string

	Participants []*Participant
}
