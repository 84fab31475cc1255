package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/workshop-groups/internal/config"
	"github.com/jakechorley/workshop-groups/pkg/core/model"
	"github.com/jakechorley/workshop-groups/pkg/responses"
)

// ListResponses reads the configured survey responses tab and parses it into participants
func (c *Client) ListResponses(cfg *config.Config) (*model.SurveyResponses, error) {
	if cfg.ResponsesSheetID == "" || cfg.ResponsesTab == "" {
		return nil, fmt.Errorf("responses sheet is not configured (set responsesSheetId and responsesTab, or pass --file)")
	}

	values, err := c.GetValues(cfg.ResponsesSheetID, cfg.ResponsesTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get survey responses: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	parsed, err := responses.ParseRows(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse survey responses: %w", err)
	}

	return parsed, nil
}
