// Package types provides type definitions for structured data used throughout the resume-bias-checker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Gender is an inferred gender label
type Gender string

// Gender labels produced by the classifiers
const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// Race is an inferred race/ethnicity label
type Race string

// Race labels produced by the surname classifier
const (
	RaceHispanic Race = "Hispanic"
	RaceBlack    Race = "Black"
	RaceAsian    Race = "Asian"
	RaceWhite    Race = "White"
	RaceUnknown  Race = "Unknown"
)

// ResumeRecord is a single normalized resume row
type ResumeRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"name,omitempty"`
	Text       string  `json:"text"`
	MatchScore float64 `json:"matchScore"`
}

// HasName reports whether a display name was extracted for the record
func (r ResumeRecord) HasName() bool {
	return r.Name != ""
}

// EnrichedRecord is a ResumeRecord with inferred demographic labels attached.
// The JSON layout is the persisted session format.
type EnrichedRecord struct {
	ResumeRecord
	InferredGender   Gender  `json:"inferredGender"`
	InferredRace     Race    `json:"inferredRace"`
	GenderConfidence float64 `json:"genderConfidence"`
	RaceConfidence   float64 `json:"raceConfidence"`
}

// IsEnriched reports whether inference has been applied to the record
func (r EnrichedRecord) IsEnriched() bool {
	return r.InferredGender != ""
}

// GroupKey returns the "{gender} - {race}" bucket key and whether the record
// belongs to any bucket (both labels known).
func (r EnrichedRecord) GroupKey() (string, bool) {
	if r.InferredGender == "" || r.InferredGender == GenderUnknown {
		return "", false
	}
	if r.InferredRace == "" || r.InferredRace == RaceUnknown {
		return "", false
	}
	return string(r.InferredGender) + " - " + string(r.InferredRace), true
}
