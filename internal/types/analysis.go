package types

import "time"

// DemographicGroup is an aggregate of enriched records sharing a (gender, race) pair
type DemographicGroup struct {
	Demographic string  `json:"demographic"` // "{gender} - {race}"
	Gender      Gender  `json:"gender"`
	Race        Race    `json:"race"`
	Count       int     `json:"count"`
	MatchScore  float64 `json:"matchScore"` // mean score rounded to 2 decimals
	Fill        string  `json:"fill"`       // chart colour
}

// AnalysisResult is the full output of one pipeline pass over a batch
type AnalysisResult struct {
	RunID          string             `json:"run_id"`
	CreatedAt      time.Time          `json:"created_at"`
	ResumeCount    int                `json:"resume_count"`
	Resumes        []EnrichedRecord   `json:"resumes"`
	Groups         []DemographicGroup `json:"groups"`
	BiasDetected   bool               `json:"bias_detected"`
	Threshold      float64            `json:"threshold"`
	OverallAverage float64            `json:"overall_average"`
	RiskLevel      string             `json:"risk_level"`
}
