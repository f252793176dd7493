package rendering

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jonathan/resume-bias-checker/internal/analysis"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

const (
	// ReportTitle heads every report
	ReportTitle = "Resume Bias Detection Report"
	// FooterText follows the page counter on every page
	FooterText = "AI-Powered Resume Bias Detection Report"

	// MaxIndividualRows caps the per-resume table
	MaxIndividualRows = 20

	notAvailable = "N/A"
	dateLayout   = "1/2/2006"
)

// Verdict headlines
const (
	VerdictBias   = "BIAS DETECTED"
	VerdictNoBias = "NO SIGNIFICANT BIAS"
)

// MethodologySection is one numbered block of the methodology description
type MethodologySection struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}

// MethodologyIntro opens the methodology description
const MethodologyIntro = "This analysis uses AI-powered demographic inference combined with statistical bias detection:"

// Methodology returns the fixed description of how labels and the verdict are produced
func Methodology() []MethodologySection {
	return []MethodologySection{
		{
			Heading: "Gender Inference",
			Points: []string{
				"Name analysis using demographic datasets (85% accuracy)",
				"Linguistic pattern analysis of resume text",
				"Combined approach for improved accuracy",
			},
		},
		{
			Heading: "Race/Ethnicity Inference",
			Points: []string{
				"Surname pattern matching against census data",
				"Demographic probability scoring",
			},
		},
		{
			Heading: "Bias Detection",
			Points: []string{
				"Disparate Impact Analysis (80% rule)",
				"Statistical comparison across demographic groups",
				"Identification of systematic score disparities",
			},
		},
	}
}

// GroupRow is one line of the demographic groups table
type GroupRow struct {
	Demographic string
	Count       int
	AvgScore    string
	Passes      bool
}

// Rule renders the 80% rule column
func (g GroupRow) Rule() string {
	if g.Passes {
		return "Pass"
	}
	return "Fail"
}

// IndividualRow is one line of the per-resume table
type IndividualRow struct {
	Name       string
	Gender     string
	GenderConf string
	Race       string
	RaceConf   string
	Score      string
}

// ReportData is everything the report template needs
type ReportData struct {
	Title           string
	GeneratedOn     string
	Summary         []string
	MethodologyNote string
	Methodology     []MethodologySection
	Groups          []GroupRow
	BiasDetected    bool
	Verdict         string
	Headline        string
	Findings        []string
	Recommendations []string
	ShowingNote     string
	Individuals     []IndividualRow
	Footer          string
}

// BuildReportData assembles the report for result as of now
func BuildReportData(result *types.AnalysisResult, now time.Time) *ReportData {
	verdict := VerdictNoBias
	headline := VerdictNoBias + " DETECTED"
	findings := []string{
		"The analysis shows no significant bias in the resume screening process.",
		"All demographic groups show relatively similar average scores.",
	}
	recommendations := []string{
		"Continue monitoring hiring metrics",
		"Maintain current screening practices",
		"Regular bias audits are still recommended",
		"Consider expanding demographic tracking",
	}
	if result.BiasDetected {
		verdict = VerdictBias
		headline = VerdictBias
		findings = []string{
			"The analysis has identified potential bias in the resume screening process.",
			"One or more demographic groups show average scores below 80% of the highest-scoring group.",
		}
		recommendations = []string{
			"Review screening criteria for potential bias",
			"Implement blind resume screening processes",
			"Provide bias training for hiring managers",
			"Monitor hiring metrics regularly",
			"Consider structured interview processes",
		}
	}

	data := &ReportData{
		Title:       ReportTitle,
		GeneratedOn: now.Format(dateLayout),
		Summary: []string{
			fmt.Sprintf("Total Resumes Analyzed: %d", result.ResumeCount),
			fmt.Sprintf("Demographic Groups Identified: %d", len(result.Groups)),
			fmt.Sprintf("Bias Detection Result: %s", verdict),
			fmt.Sprintf("Overall Average Score: %s%%", formatNumber(analysis.OverallAverage(result.Groups))),
		},
		MethodologyNote: MethodologyIntro,
		Methodology:     Methodology(),
		BiasDetected:    result.BiasDetected,
		Verdict:         verdict,
		Headline:        headline,
		Findings:        findings,
		Recommendations: recommendations,
		Footer:          FooterText,
	}

	for _, g := range result.Groups {
		data.Groups = append(data.Groups, GroupRow{
			Demographic: g.Demographic,
			Count:       g.Count,
			AvgScore:    formatNumber(g.MatchScore) + "%",
			Passes:      analysis.PassesThreshold(g, result.Groups),
		})
	}

	shown := min(MaxIndividualRows, len(result.Resumes))
	if shown > 0 {
		data.ShowingNote = fmt.Sprintf("(Showing first %d of %d resumes)", shown, len(result.Resumes))
	}
	for _, r := range result.Resumes[:shown] {
		data.Individuals = append(data.Individuals, IndividualRow{
			Name:       orNotAvailable(r.Name),
			Gender:     labelOrUnknown(string(r.InferredGender)),
			GenderConf: formatConfidence(r.GenderConfidence),
			Race:       labelOrUnknown(string(r.InferredRace)),
			RaceConf:   formatConfidence(r.RaceConfidence),
			Score:      strconv.FormatFloat(r.MatchScore, 'f', 1, 64),
		})
	}

	return data
}

// ReportFileName returns Resume_Bias_Report_YYYY-MM-DD.<ext> for the UTC date of now
func ReportFileName(now time.Time, ext string) string {
	return fmt.Sprintf("Resume_Bias_Report_%s.%s", now.UTC().Format("2006-01-02"), ext)
}

// formatNumber prints v with the fewest digits that round-trip, so 90 prints as "90"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatConfidence renders a [0,1] confidence as a whole percentage, or N/A when zero
func formatConfidence(c float64) string {
	if c == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%d%%", int(math.Floor(c*100+0.5)))
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func labelOrUnknown(s string) string {
	if s == "" {
		return string(types.GenderUnknown)
	}
	return s
}
