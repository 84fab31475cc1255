package responses

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jakechorley/workshop-groups/internal/config"
	"github.com/jakechorley/workshop-groups/pkg/core/model"
)

// CSVSource reads survey responses from a CSV export of the responses sheet
type CSVSource struct {
	Path string
}

// ListResponses loads and parses the CSV file. The config is not needed for local files.
func (s *CSVSource) ListResponses(cfg *config.Config) (*model.SurveyResponses, error) {
	return LoadCSV(s.Path)
}

// LoadCSV reads a CSV export with the same layout as the responses sheet
func LoadCSV(path string) (*model.SurveyResponses, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open responses file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Survey exports drop trailing blank cells, so rows vary in length
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read responses file: %w", err)
	}

	raw := make([][]interface{}, len(records))
	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		raw[i] = row
	}

	responses, err := ParseRows(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse responses file: %w", err)
	}
	return responses, nil
}
