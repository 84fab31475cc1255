package sheetsclient

import (
	"fmt"
)

// Header columns of a published assignments tab
var assignmentColumns = []interface{}{"Group", "Last name", "First name", "Grade", "Choice rank"}

// PublishedAssignmentRow is one participant line on the results tab
type PublishedAssignmentRow struct {
	Group     string // Empty when unassigned
	LastName  string
	FirstName string
	Grade     int
	Rank      int // 1-based choice rank granted, 0 when not placed by the run
}

// PublishedAssignments represents a complete results tab
type PublishedAssignments struct {
	Title string
	RunID string
	Seed  uint64
	Rows  []PublishedAssignmentRow
}

// PublishAssignments writes the results to a tab named after the run.
// A missing tab is created; an existing one is cleared and overwritten.
func (c *Client) PublishAssignments(spreadsheetID string, published *PublishedAssignments) error {
	if spreadsheetID == "" {
		return fmt.Errorf("results sheet is not configured")
	}
	if published.Title == "" {
		return fmt.Errorf("published assignments need a tab title")
	}

	exists, err := c.SheetExists(spreadsheetID, published.Title)
	if err != nil {
		return err
	}

	if exists {
		if err := c.ClearValues(spreadsheetID, fmt.Sprintf("'%s'", published.Title)); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		if _, err := c.CreateSheet(spreadsheetID, published.Title); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("'%s'!A1", published.Title), buildAssignmentValues(published)); err != nil {
		return fmt.Errorf("failed to write assignments: %w", err)
	}

	return nil
}

// buildAssignmentValues lays out the tab: run details on row 1, a blank row, then the header and data
func buildAssignmentValues(published *PublishedAssignments) [][]interface{} {
	values := make([][]interface{}, 0, len(published.Rows)+3)
	values = append(values,
		[]interface{}{"Run ID", published.RunID, "Seed", fmt.Sprintf("%d", published.Seed)},
		[]interface{}{},
		assignmentColumns,
	)

	for _, row := range published.Rows {
		rank := ""
		if row.Rank > 0 {
			rank = fmt.Sprintf("%d", row.Rank)
		}
		values = append(values, []interface{}{row.Group, row.LastName, row.FirstName, row.Grade, rank})
	}

	return values
}
