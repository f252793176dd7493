package analysis

import "github.com/jonathan/resume-bias-checker/internal/types"

// ThresholdRatio is the share of the top group's mean every group must reach
const ThresholdRatio = 0.8

// Risk levels reported alongside the verdict
const (
	RiskHigh = "High"
	RiskLow  = "Low"
)

// Threshold returns ThresholdRatio times the top group's mean, or 0 when
// there are no groups. groups must be sorted highest mean first.
func Threshold(groups []types.DemographicGroup) float64 {
	if len(groups) == 0 {
		return 0
	}
	return groups[0].MatchScore * ThresholdRatio
}

// DetectBias reports whether any group's mean falls below the threshold.
// Fewer than two groups never indicate bias.
func DetectBias(groups []types.DemographicGroup) bool {
	if len(groups) < 2 {
		return false
	}
	threshold := Threshold(groups)
	for _, g := range groups {
		if g.MatchScore < threshold {
			return true
		}
	}
	return false
}

// PassesThreshold reports whether group meets the 80% rule relative to groups
func PassesThreshold(group types.DemographicGroup, groups []types.DemographicGroup) bool {
	return group.MatchScore >= Threshold(groups)
}

// RiskLevel maps a verdict to its display level
func RiskLevel(biasDetected bool) string {
	if biasDetected {
		return RiskHigh
	}
	return RiskLow
}
