package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-bias-checker/internal/pipeline"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

func TestRenderLaTeX_Sample(t *testing.T) {
	tex, err := RenderLaTeX(BuildReportData(sampleResult(t), reportTime))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(tex, `\documentclass`))
	assert.Contains(t, tex, `\end{document}`)
	assert.Contains(t, tex, "Resume Bias Detection Report")
	assert.Contains(t, tex, "Generated on: 3/7/2026")
	assert.Contains(t, tex, `Overall Average Score: 84.5\%`)
	assert.Contains(t, tex, `Male - Black & 2 & 91.5\% & Pass \\`)
	assert.Contains(t, tex, `Female - Black & 2 & 62.5\% & Fail \\`)
	assert.Contains(t, tex, `{\color{biasred}\bfseries BIAS DETECTED}`)
	assert.Contains(t, tex, `\item Implement blind resume screening processes`)
	assert.Contains(t, tex, `John Smith & Male & 85\% & White & 60\% & 88.0 \\`)
	assert.Contains(t, tex, `Name analysis using demographic datasets (85\% accuracy)`)
	assert.Contains(t, tex, `\textbar{} AI-Powered Resume Bias Detection Report`)
	assert.NotContains(t, tex, "<<")
}

func TestRenderLaTeX_NoBiasAndEscaping(t *testing.T) {
	result := pipeline.Analyze([]types.EnrichedRecord{{
		ResumeRecord:   types.ResumeRecord{ID: "resume_1", Name: "O'Brien & Sons_1", Text: "x", MatchScore: 90},
		InferredGender: types.GenderMale,
		InferredRace:   types.RaceWhite,
	}})

	tex, err := RenderLaTeX(BuildReportData(result, reportTime))
	require.NoError(t, err)

	assert.Contains(t, tex, `{\color{okgreen}\bfseries NO SIGNIFICANT BIAS DETECTED}`)
	assert.Contains(t, tex, `O'Brien \& Sons\_1 & Male`)
	assert.Contains(t, tex, `\item Continue monitoring hiring metrics`)
}

func TestRenderLaTeX_NoGroups(t *testing.T) {
	tex, err := RenderLaTeX(BuildReportData(pipeline.Analyze(nil), reportTime))
	require.NoError(t, err)

	assert.Contains(t, tex, "No demographic groups could be identified.")
	assert.NotContains(t, tex, "Individual Resume Analysis")
}

func TestRenderLaTeXWithTemplate(t *testing.T) {
	data := BuildReportData(sampleResult(t), reportTime)

	out, err := RenderLaTeXWithTemplate(`<< escape .Title >>: << len .Groups >> groups, << .Verdict >>`, data)
	require.NoError(t, err)
	assert.Equal(t, "Resume Bias Detection Report: 7 groups, BIAS DETECTED", out)
}

func TestRenderLaTeXWithTemplate_Errors(t *testing.T) {
	data := BuildReportData(sampleResult(t), reportTime)

	_, err := RenderLaTeXWithTemplate(`<< .Title `, data)
	require.Error(t, err)
	var tmplErr *TemplateError
	require.ErrorAs(t, err, &tmplErr)
	assert.Contains(t, err.Error(), "failed to parse template")

	_, err = RenderLaTeXWithTemplate(`<< .DoesNotExist >>`, data)
	require.ErrorAs(t, err, &tmplErr)
	assert.Contains(t, err.Error(), "failed to execute template")
}
