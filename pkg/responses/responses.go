// Package responses turns a preference survey export into participants.
//
// Expected layout:
//
//	row 1:  survey question text (ignored)
//	row 2:  First name | Last name | Grade | <group name> | <group name> | ...
//	row 3+: one respondent per row; a group cell holds the rank given to that
//	        group, e.g. "1" or "2 - second choice". Blank cells are unranked.
package responses

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/jakechorley/workshop-groups/pkg/core/model"
)

const (
	headerRowIndex   = 1
	firstDataRow     = 2
	colFirstName     = 0
	colLastName      = 1
	colGrade         = 2
	firstGroupColumn = 3
)

var (
	// ErrDuplicateRank is returned when a respondent gives the same rank to two groups
	ErrDuplicateRank = errors.New("duplicate rank")

	// ErrInvalidRank is returned when a ranked cell does not start with a positive number
	ErrInvalidRank = errors.New("invalid rank")
)

// ParseRows converts raw spreadsheet values into survey responses
func ParseRows(raw [][]interface{}) (*model.SurveyResponses, error) {
	if len(raw) <= headerRowIndex {
		return nil, fmt.Errorf("no header row found")
	}

	groupNames, err := parseGroupNames(raw[headerRowIndex])
	if err != nil {
		return nil, err
	}

	participants := make([]*model.Participant, 0, max(len(raw)-firstDataRow, 0))
	for i := firstDataRow; i < len(raw); i++ {
		row := raw[i]

		// Skip empty rows (rows with no first name)
		if cellString(row, colFirstName) == "" {
			continue
		}

		participant, err := parseParticipant(row, len(groupNames))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		participants = append(participants, participant)
	}

	return &model.SurveyResponses{
		GroupNames:   groupNames,
		Participants: participants,
	}, nil
}

// parseGroupNames reads the group names from the header row
func parseGroupNames(header []interface{}) ([]string, error) {
	if len(header) < firstGroupColumn {
		return nil, fmt.Errorf("header row must start with first name, last name and grade columns")
	}

	names := make([]string, 0, len(header)-firstGroupColumn)
	for col := firstGroupColumn; col < len(header); col++ {
		name := cellString(header, col)
		if name == "" {
			return nil, fmt.Errorf("header column %d has no group name", col+1)
		}
		if slices.Contains(names, name) {
			return nil, fmt.Errorf("group %q appears twice in the header", name)
		}
		names = append(names, name)
	}
	return names, nil
}

// parseParticipant builds a participant from a data row
func parseParticipant(row []interface{}, groupCount int) (*model.Participant, error) {
	grade, err := parseGrade(row)
	if err != nil {
		return nil, err
	}

	// rank -> group index
	ranked := make(map[int]int)
	for col := firstGroupColumn; col < len(row); col++ {
		value := cellString(row, col)
		if value == "" {
			continue
		}

		group := col - firstGroupColumn
		if group >= groupCount {
			return nil, fmt.Errorf("column %d is ranked but has no group in the header", col+1)
		}

		rank, err := ExtractRank(value)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", col+1, err)
		}

		if existing, ok := ranked[rank]; ok {
			return nil, fmt.Errorf("%w: rank %d given to groups %d and %d", ErrDuplicateRank, rank+1, existing+1, group+1)
		}
		ranked[rank] = group
	}

	// Order by rank; gaps in the ranking close up
	ranks := make([]int, 0, len(ranked))
	for rank := range ranked {
		ranks = append(ranks, rank)
	}
	slices.Sort(ranks)

	choices := make([]int, len(ranks))
	for i, rank := range ranks {
		choices[i] = ranked[rank]
	}

	return model.NewParticipant(
		cellString(row, colFirstName),
		cellString(row, colLastName),
		grade,
		choices,
	), nil
}

// parseGrade reads the grade column, accepting "10", "10.0" or a numeric cell
func parseGrade(row []interface{}) (int, error) {
	value := cellString(row, colGrade)
	if value == "" {
		return 0, fmt.Errorf("missing grade")
	}

	if grade, err := strconv.Atoi(value); err == nil {
		return grade, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("grade %q is not a whole number", value)
	}
	return int(f), nil
}

// ExtractRank returns the zero-based rank encoded by the leading digits of a cell,
// so "1" and "1st choice" are both rank 0
func ExtractRank(value string) (int, error) {
	value = strings.TrimSpace(value)

	end := 0
	for end < len(value) && unicode.IsDigit(rune(value[end])) {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %q does not start with a number", ErrInvalidRank, value)
	}

	rank, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidRank, value, err)
	}
	if rank < 1 {
		return 0, fmt.Errorf("%w: %q, ranks start at 1", ErrInvalidRank, value)
	}

	return rank - 1, nil
}

// cellString returns the trimmed text of a cell, or "" when the row is too short
func cellString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}

	switch v := row[index].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
