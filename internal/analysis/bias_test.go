package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-bias-checker/internal/inference"
	"github.com/jonathan/resume-bias-checker/internal/ingestion"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

func groupsWithMeans(means ...float64) []types.DemographicGroup {
	groups := make([]types.DemographicGroup, len(means))
	for i, m := range means {
		groups[i] = types.DemographicGroup{Demographic: string(rune('A' + i)), Count: 1, MatchScore: m}
	}
	return groups
}

func TestDetectBias(t *testing.T) {
	tests := []struct {
		name  string
		means []float64
		want  bool
	}{
		{name: "no groups", means: nil, want: false},
		{name: "single group", means: []float64{20}, want: false},
		{name: "within 80 percent", means: []float64{90, 80, 72}, want: false},
		{name: "exactly at threshold", means: []float64{100, 80}, want: false},
		{name: "just below threshold", means: []float64{100, 79.99}, want: true},
		{name: "large gap", means: []float64{91.5, 62.5}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBias(groupsWithMeans(tt.means...)))
		})
	}
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 0.0, Threshold(nil))
	assert.InDelta(t, 72.0, Threshold(groupsWithMeans(90, 50)), 1e-9)
}

func TestPassesThreshold(t *testing.T) {
	groups := groupsWithMeans(100, 80, 79)
	assert.True(t, PassesThreshold(groups[0], groups))
	assert.True(t, PassesThreshold(groups[1], groups))
	assert.False(t, PassesThreshold(groups[2], groups))
}

func TestRiskLevel(t *testing.T) {
	assert.Equal(t, "High", RiskLevel(true))
	assert.Equal(t, "Low", RiskLevel(false))
}

func TestSampleDataset_EndToEnd(t *testing.T) {
	records := inference.EnrichAll(ingestion.SampleRecords())
	require.Len(t, records, 10)

	byName := map[string]types.EnrichedRecord{}
	for _, r := range records {
		byName[r.Name] = r
	}
	for _, name := range []string{"Keisha Washington", "Aisha Jackson"} {
		r := byName[name]
		assert.Equal(t, types.GenderFemale, r.InferredGender, name)
		assert.Equal(t, types.RaceBlack, r.InferredRace, name)
	}

	groups := GroupByDemographic(records)
	require.Len(t, groups, 7)

	want := []struct {
		demographic string
		count       int
		mean        float64
	}{
		{"Male - Black", 2, 91.5},
		{"Male - Hispanic", 1, 90},
		{"Female - Asian", 1, 89},
		{"Male - White", 1, 88},
		{"Male - Asian", 1, 87},
		{"Female - Hispanic", 2, 83.5},
		{"Female - Black", 2, 62.5},
	}
	for i, w := range want {
		assert.Equal(t, w.demographic, groups[i].Demographic)
		assert.Equal(t, w.count, groups[i].Count, w.demographic)
		assert.Equal(t, w.mean, groups[i].MatchScore, w.demographic)
	}

	assert.InDelta(t, 73.2, Threshold(groups), 1e-9)
	assert.True(t, DetectBias(groups))
	assert.Equal(t, 84.5, OverallAverage(groups))
	assert.Equal(t, "#3b82f6", groups[3].Fill)
}
