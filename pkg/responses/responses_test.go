package responses

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() [][]interface{} {
	return [][]interface{}{
		{"Please rank the workshops you would like to attend"},
		{"First name", "Last name", "Grade", "Baking", "Choir", "Drama"},
		{"Ada", "Lovelace", "10", "2", "1", "3"},
		{"Alan", "Turing", float64(9), "", "1st choice", ""},
		{"", "", "", "", "", ""},
		{"Grace", "Hopper", "11.0", "3 - last", "", "1"},
		{"Edsger", "Dijkstra", "12"},
	}
}

func TestParseRows_Valid(t *testing.T) {
	result, err := ParseRows(sampleRows())
	require.NoError(t, err)

	assert.Equal(t, []string{"Baking", "Choir", "Drama"}, result.GroupNames)
	require.Len(t, result.Participants, 4)

	ada := result.Participants[0]
	assert.Equal(t, "Ada", ada.FirstName)
	assert.Equal(t, "Lovelace", ada.LastName)
	assert.Equal(t, 10, ada.Cohort)
	assert.Equal(t, []int{1, 0, 2}, ada.Choices)
	assert.False(t, ada.IsAssigned())

	alan := result.Participants[1]
	assert.Equal(t, 9, alan.Cohort)
	assert.Equal(t, []int{1}, alan.Choices)

	// Ranks 1 and 3 close up into a two-entry list
	grace := result.Participants[2]
	assert.Equal(t, 11, grace.Cohort)
	assert.Equal(t, []int{2, 0}, grace.Choices)

	// Nothing ranked
	edsger := result.Participants[3]
	assert.Empty(t, edsger.Choices)
}

func TestParseRows_DuplicateRank(t *testing.T) {
	rows := [][]interface{}{
		{"survey"},
		{"First name", "Last name", "Grade", "Baking", "Choir"},
		{"Ada", "Lovelace", "10", "1", "1"},
	}

	_, err := ParseRows(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateRank))
	assert.Contains(t, err.Error(), "row 3")
}

func TestParseRows_InvalidRank(t *testing.T) {
	rows := [][]interface{}{
		{"survey"},
		{"First name", "Last name", "Grade", "Baking"},
		{"Ada", "Lovelace", "10", "first"},
	}

	_, err := ParseRows(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRank))
}

func TestParseRows_BadGrade(t *testing.T) {
	tests := []struct {
		name  string
		grade interface{}
	}{
		{name: "missing", grade: ""},
		{name: "text", grade: "senior"},
		{name: "fraction", grade: "9.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]interface{}{
				{"survey"},
				{"First name", "Last name", "Grade", "Baking"},
				{"Ada", "Lovelace", tt.grade, "1"},
			}

			_, err := ParseRows(rows)
			assert.Error(t, err)
		})
	}
}

func TestParseRows_MissingHeader(t *testing.T) {
	_, err := ParseRows([][]interface{}{{"survey"}})
	assert.Error(t, err)

	_, err = ParseRows([][]interface{}{{"survey"}, {"First name", "Last name"}})
	assert.Error(t, err)
}

func TestParseRows_HeaderProblems(t *testing.T) {
	_, err := ParseRows([][]interface{}{
		{"survey"},
		{"First name", "Last name", "Grade", "Baking", "", "Drama"},
	})
	assert.ErrorContains(t, err, "no group name")

	_, err = ParseRows([][]interface{}{
		{"survey"},
		{"First name", "Last name", "Grade", "Baking", "Baking"},
	})
	assert.ErrorContains(t, err, "appears twice")
}

func TestParseRows_RankedCellBeyondHeader(t *testing.T) {
	rows := [][]interface{}{
		{"survey"},
		{"First name", "Last name", "Grade", "Baking"},
		{"Ada", "Lovelace", "10", "1", "2"},
	}

	_, err := ParseRows(rows)
	assert.ErrorContains(t, err, "no group in the header")
}

func TestParseRows_NoGroupsNoParticipants(t *testing.T) {
	result, err := ParseRows([][]interface{}{
		{"survey"},
		{"First name", "Last name", "Grade"},
	})
	require.NoError(t, err)

	assert.Empty(t, result.GroupNames)
	assert.Empty(t, result.Participants)
}

func TestExtractRank(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{input: "1", expected: 0},
		{input: "3", expected: 2},
		{input: " 2 - second choice", expected: 1},
		{input: "10th", expected: 9},
		{input: "0", wantErr: true},
		{input: "x1", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rank, err := ExtractRank(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rank)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "responses.csv")

	content := `"Rank the workshops, 1 = favourite"
First name,Last name,Grade,Baking,Choir
Ada,Lovelace,10,2,1
Alan,Turing,9,1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	source := &CSVSource{Path: path}
	result, err := source.ListResponses(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Baking", "Choir"}, result.GroupNames)
	require.Len(t, result.Participants, 2)
	assert.Equal(t, []int{1, 0}, result.Participants[0].Choices)
	assert.Equal(t, []int{0}, result.Participants[1].Choices)
}

func TestLoadCSV_FileNotFound(t *testing.T) {
	_, err := LoadCSV("/nonexistent/responses.csv")
	assert.ErrorContains(t, err, "failed to open responses file")
}

func TestLoadCSV_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("only one row\n"), 0644))

	_, err := LoadCSV(path)
	assert.ErrorContains(t, err, "failed to parse responses file")
}
