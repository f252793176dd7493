package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-bias-checker/internal/types"
)

func enriched(id string, gender types.Gender, race types.Race, score float64) types.EnrichedRecord {
	return types.EnrichedRecord{
		ResumeRecord:   types.ResumeRecord{ID: id, Text: "text", MatchScore: score},
		InferredGender: gender,
		InferredRace:   race,
	}
}

func TestGroupByDemographic_Empty(t *testing.T) {
	groups := GroupByDemographic(nil)
	assert.Empty(t, groups)
	assert.Equal(t, 0.0, OverallAverage(groups))
}

func TestGroupByDemographic_SkipsUnknownLabels(t *testing.T) {
	records := []types.EnrichedRecord{
		enriched("1", types.GenderUnknown, types.RaceWhite, 90),
		enriched("2", types.GenderMale, types.RaceUnknown, 90),
		enriched("3", types.GenderFemale, types.RaceAsian, 70),
		{ResumeRecord: types.ResumeRecord{ID: "4", MatchScore: 50}},
	}

	groups := GroupByDemographic(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "Female - Asian", groups[0].Demographic)
	assert.Equal(t, types.GenderFemale, groups[0].Gender)
	assert.Equal(t, types.RaceAsian, groups[0].Race)
	assert.Equal(t, 1, groups[0].Count)
	assert.Equal(t, 70.0, groups[0].MatchScore)
}

func TestGroupByDemographic_MeansAndSorting(t *testing.T) {
	records := []types.EnrichedRecord{
		enriched("1", types.GenderMale, types.RaceWhite, 80),
		enriched("2", types.GenderFemale, types.RaceBlack, 60),
		enriched("3", types.GenderMale, types.RaceWhite, 90),
		enriched("4", types.GenderFemale, types.RaceBlack, 65),
		enriched("5", types.GenderMale, types.RaceAsian, 95),
	}

	groups := GroupByDemographic(records)
	require.Len(t, groups, 3)

	assert.Equal(t, "Male - Asian", groups[0].Demographic)
	assert.Equal(t, 95.0, groups[0].MatchScore)
	assert.Equal(t, "Male - White", groups[1].Demographic)
	assert.Equal(t, 85.0, groups[1].MatchScore)
	assert.Equal(t, 2, groups[1].Count)
	assert.Equal(t, "Female - Black", groups[2].Demographic)
	assert.Equal(t, 62.5, groups[2].MatchScore)

	total := 0
	for _, g := range groups {
		total += g.Count
	}
	assert.Equal(t, len(records), total)
}

func TestGroupByDemographic_FillFollowsFirstSeenOrder(t *testing.T) {
	records := []types.EnrichedRecord{
		enriched("1", types.GenderMale, types.RaceWhite, 50),
		enriched("2", types.GenderFemale, types.RaceBlack, 90),
		enriched("3", types.GenderMale, types.RaceAsian, 70),
	}

	groups := GroupByDemographic(records)
	require.Len(t, groups, 3)

	fills := map[string]string{}
	for _, g := range groups {
		fills[g.Demographic] = g.Fill
	}
	assert.Equal(t, "#3b82f6", fills["Male - White"])
	assert.Equal(t, "#ef4444", fills["Female - Black"])
	assert.Equal(t, "#f59e0b", fills["Male - Asian"])
}

func TestGroupByDemographic_TiesKeepFirstSeenOrder(t *testing.T) {
	records := []types.EnrichedRecord{
		enriched("1", types.GenderFemale, types.RaceWhite, 80),
		enriched("2", types.GenderMale, types.RaceHispanic, 80),
		enriched("3", types.GenderMale, types.RaceBlack, 80),
	}

	groups := GroupByDemographic(records)
	require.Len(t, groups, 3)
	assert.Equal(t, "Female - White", groups[0].Demographic)
	assert.Equal(t, "Male - Hispanic", groups[1].Demographic)
	assert.Equal(t, "Male - Black", groups[2].Demographic)
}

func TestGroupByDemographic_RoundsHalfUp(t *testing.T) {
	records := []types.EnrichedRecord{
		enriched("1", types.GenderMale, types.RaceWhite, 70),
		enriched("2", types.GenderMale, types.RaceWhite, 70),
		enriched("3", types.GenderMale, types.RaceWhite, 71),
	}

	groups := GroupByDemographic(records)
	require.Len(t, groups, 1)
	assert.Equal(t, 70.33, groups[0].MatchScore)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 83.5, want: 83.5},
		{in: 70.333333, want: 70.33},
		{in: 70.666666, want: 70.67},
		{in: 0.125, want: 0.13},
		{in: 100, want: 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, round2(tt.in), 1e-9, "round2(%v)", tt.in)
	}
}

func TestOverallAverage(t *testing.T) {
	groups := []types.DemographicGroup{
		{Demographic: "a", Count: 10, MatchScore: 90},
		{Demographic: "b", Count: 1, MatchScore: 70},
	}
	assert.Equal(t, 80.0, OverallAverage(groups))
}
