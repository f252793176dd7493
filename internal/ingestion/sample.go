package ingestion

import (
	"fmt"

	"github.com/jonathan/resume-bias-checker/internal/types"
)

var sampleResumes = []struct {
	name  string
	text  string
	score float64
}{
	{"John Smith", "Experienced software engineer who led multiple teams and achieved significant performance improvements. Delivered complex projects and exceeded expectations consistently.", 88},
	{"Maria Garcia", "Collaborative project manager who supported cross-functional teams and helped coordinate successful product launches. Contributed to team success through careful planning.", 85},
	{"David Johnson", "Results-driven sales executive who dominated the market and outperformed competitors. Won multiple awards and beat all quarterly targets.", 92},
	{"Keisha Washington", "Dedicated marketing specialist who collaborated with diverse teams and facilitated successful campaigns. Mentored junior staff and supported organizational goals.", 64},
	{"Jennifer Chen", "Analytical data scientist who contributed to machine learning initiatives and participated in research projects. Helped develop innovative solutions.", 89},
	{"Michael Rodriguez", "Accomplished finance director who spearheaded cost reduction initiatives and drove revenue growth. Executed strategic plans and conquered market challenges.", 90},
	{"Aisha Jackson", "Caring human resources manager who nurtured employee development and supported workplace diversity initiatives. Facilitated team building and mentored staff.", 61},
	{"Robert Kim", "Innovative product manager who pioneered new features and led development teams. Achieved breakthrough results and delivered cutting-edge solutions.", 87},
	{"Lisa Martinez", "Thoughtful UX designer who collaborated with stakeholders and helped create user-friendly interfaces. Contributed creative solutions and supported design teams.", 82},
	{"James Thompson", "Competitive business analyst who exceeded performance metrics and dominated market analysis. Won recognition for outstanding achievements and aggressive growth strategies.", 91},
}

// SampleRecords returns the built-in demonstration dataset
func SampleRecords() []types.ResumeRecord {
	records := make([]types.ResumeRecord, len(sampleResumes))
	for i, s := range sampleResumes {
		records[i] = types.ResumeRecord{
			ID:         fmt.Sprintf(idFormat, i+1),
			Name:       s.name,
			Text:       s.text,
			MatchScore: s.score,
		}
	}
	return records
}
