package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/workshop-groups/internal/config"
	"github.com/jakechorley/workshop-groups/pkg/core/allocator"
	"github.com/jakechorley/workshop-groups/pkg/core/model"
	"github.com/jakechorley/workshop-groups/pkg/core/registry"
)

func assigned(t *testing.T, first, last string, cohort, group int) *model.Participant {
	t.Helper()
	p := model.NewParticipant(first, last, cohort, []int{group})
	require.NoError(t, p.Assign(group))
	return p
}

func sampleRegistry(t *testing.T) *registry.Registry {
	return registry.New(
		assigned(t, "Zoe", "Young", 10, 0),
		assigned(t, "Amy", "Adams", 9, 1),
		assigned(t, "Ben", "Adams", 9, 0),
		model.NewParticipant("Cal", "Cole", 12, nil),
		assigned(t, "Dan", "Dale", 7, 1),
	)
}

func TestWriteByGroup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteByGroup(&buf, []string{"Robotics", "Drama club"}, sampleRegistry(t)))

	expected := "ROBOTICS\n" +
		"Ben Adams (9th)\n" +
		"Zoe Young (10th)\n" +
		"\n" +
		"DRAMA CLUB\n" +
		"Dan Dale (7th)\n" +
		"Amy Adams (9th)\n" +
		"\n" +
		"UNASSIGNED\n" +
		"Cal Cole (12th)\n" +
		"\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteByGroup_NoUnassignedSection(t *testing.T) {
	reg := registry.New(assigned(t, "Amy", "Adams", 9, 0))

	var buf bytes.Buffer
	require.NoError(t, WriteByGroup(&buf, []string{"Art", "Chess"}, reg))

	assert.Equal(t, "ART\nAmy Adams (9th)\n\nCHESS\n\n", buf.String())
}

func TestWriteByCohort(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteByCohort(&buf, []string{"Robotics", "Drama club"}, sampleRegistry(t), config.DefaultCohorts()))

	expected := "FRESHMEN\n" +
		"Amy Adams: Drama club\n" +
		"Ben Adams: Robotics\n" +
		"\n" +
		"SOPHOMORES\n" +
		"Zoe Young: Robotics\n" +
		"\n" +
		"JUNIORS\n" +
		"\n" +
		"SENIORS\n" +
		"Cal Cole: None\n" +
		"\n" +
		"OTHER\n" +
		"Dan Dale: Drama club\n" +
		"\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, []string{"Art", "Robotics"}, allocator.Occupancy{2, 10}, 10))

	assert.Equal(t, "Art       2/10\nRobotics  10/10\n", buf.String())
}

func TestOrdinal(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{9, "9th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{21, "21st"},
		{22, "22nd"},
		{111, "111th"},
		{0, "0th"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ordinal(tt.n))
		})
	}
}
