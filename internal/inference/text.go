package inference

import (
	"strings"

	"github.com/jonathan/resume-bias-checker/internal/types"
)

const (
	maleRatioThreshold   = 0.6
	femaleRatioThreshold = 0.4
	maxTextConfidence    = 0.75
)

// WordCounts holds the agentic and communal term counts found in a text
type WordCounts struct {
	Agentic  int `json:"agentic"`
	Communal int `json:"communal"`
}

// Total returns the combined count
func (c WordCounts) Total() int {
	return c.Agentic + c.Communal
}

// CountWords counts substring occurrences of every agentic and communal term
// in the lower-cased text. A term embedded in a longer word still counts.
func CountWords(text string) WordCounts {
	lower := strings.ToLower(text)

	var counts WordCounts
	for _, word := range agenticWords {
		counts.Agentic += strings.Count(lower, word)
	}
	for _, word := range communalWords {
		counts.Communal += strings.Count(lower, word)
	}
	return counts
}

// ClassifyGenderByText infers gender from the agentic share of gendered terms.
// Both ratio boundaries are exclusive: a ratio of exactly 0.4 or 0.6 is Unknown.
func ClassifyGenderByText(text string) (types.Gender, float64) {
	counts := CountWords(text)
	if counts.Total() == 0 {
		return types.GenderUnknown, 0.0
	}

	ratio := float64(counts.Agentic) / float64(counts.Total())
	switch {
	case ratio > maleRatioThreshold:
		return types.GenderMale, min(maxTextConfidence, ratio)
	case ratio < femaleRatioThreshold:
		return types.GenderFemale, min(maxTextConfidence, 1-ratio)
	default:
		return types.GenderUnknown, 0.0
	}
}
