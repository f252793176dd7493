// Package analysis aggregates enriched resumes by inferred demographic group
// and applies the 80% (four-fifths) disparate-impact rule to the group means.
package analysis

import (
	"math"
	"sort"

	"github.com/jonathan/resume-bias-checker/internal/types"
)

// chartPalette colours groups in first-seen order
var chartPalette = []string{"#3b82f6", "#ef4444", "#f59e0b", "#10b981", "#8b5cf6", "#ec4899", "#06b6d4", "#84cc16"}

type bucket struct {
	group types.DemographicGroup
	sum   float64
}

// GroupByDemographic buckets records by "{gender} - {race}", skipping records
// with an Unknown label on either axis, and returns the groups sorted by mean
// score, highest first. Groups with equal means keep first-seen order.
func GroupByDemographic(records []types.EnrichedRecord) []types.DemographicGroup {
	var order []string
	buckets := make(map[string]*bucket)

	for _, r := range records {
		key, ok := r.GroupKey()
		if !ok {
			continue
		}
		b, exists := buckets[key]
		if !exists {
			b = &bucket{group: types.DemographicGroup{
				Demographic: key,
				Gender:      r.InferredGender,
				Race:        r.InferredRace,
				Fill:        chartPalette[len(order)%len(chartPalette)],
			}}
			buckets[key] = b
			order = append(order, key)
		}
		b.group.Count++
		b.sum += r.MatchScore
	}

	groups := make([]types.DemographicGroup, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.group.MatchScore = round2(b.sum / float64(b.group.Count))
		groups = append(groups, b.group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].MatchScore > groups[j].MatchScore
	})
	return groups
}

// OverallAverage is the unweighted mean of the group means, rounded to 2 decimals
func OverallAverage(groups []types.DemographicGroup) float64 {
	if len(groups) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range groups {
		sum += g.MatchScore
	}
	return round2(sum / float64(len(groups)))
}

// round2 rounds half up to 2 decimal places
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
