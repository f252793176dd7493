// Package observability provides formatted console output for analysis runs.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/jonathan/resume-bias-checker/internal/pipeline"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the length of a bar for a score of 100
	barWidth = 25
	// labelWidth pads group names in the chart
	labelWidth = 18
	// DefaultResumeRows is the number of resumes PrintResumes shows by default
	DefaultResumeRows = 20
)

// Printer handles formatted output of analysis results
type Printer struct {
	out    io.Writer
	bias   *color.Color
	noBias *color.Color
	dim    *color.Color
}

// NewPrinter creates a new Printer that writes to the given writer.
// Colour is used only when useColor is true.
func NewPrinter(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:    out,
		bias:   color.New(color.FgRed, color.Bold),
		noBias: color.New(color.FgGreen, color.Bold),
		dim:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.bias, p.noBias, p.dim} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintProgress writes one pipeline progress line
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "[%3.0f%%] %s: %s\n", event.Percent, event.Step, event.Message)
}

// PrintSummary outputs the headline numbers of a run
func (p *Printer) PrintSummary(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.RunID != "" {
		sb.WriteString(fmt.Sprintf("Run:              %s\n", result.RunID))
	}
	sb.WriteString(fmt.Sprintf("Resumes analyzed: %d\n", result.ResumeCount))
	sb.WriteString(fmt.Sprintf("Groups found:     %d\n", len(result.Groups)))
	sb.WriteString(fmt.Sprintf("Overall average:  %.2f\n", result.OverallAverage))
	sb.WriteString(fmt.Sprintf("80%% threshold:    %.2f\n", result.Threshold))
	sb.WriteString(fmt.Sprintf("Risk level:       %s\n", result.RiskLevel))

	p.printBox("BIAS ANALYSIS SUMMARY", sb.String())
}

// PrintChart outputs a horizontal bar per group, highest mean first
func (p *Printer) PrintChart(groups []types.DemographicGroup) {
	if len(groups) == 0 {
		p.printBox("AVERAGE MATCH SCORE BY GROUP", "No demographic groups identified")
		return
	}

	var sb strings.Builder
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("%-*s %-*s %6.2f\n",
			labelWidth, truncate(g.Demographic, labelWidth),
			barWidth, bar(g.MatchScore),
			g.MatchScore,
		))
	}
	p.printBox("AVERAGE MATCH SCORE BY GROUP", sb.String())
}

// bar renders score on a 0-100 scale, clamped to the chart width
func bar(score float64) string {
	n := int(score / 100 * barWidth)
	n = max(0, min(n, barWidth))
	return strings.Repeat("█", n)
}

// PrintVerdict outputs the coloured 80% rule verdict
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintVerdict(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	if result.BiasDetected {
		p.bias.Fprintln(p.out, "⚠ BIAS DETECTED")
		fmt.Fprintf(p.out, "One or more groups average below %.2f (80%% of the top group).\n", result.Threshold)
		return
	}
	p.noBias.Fprintln(p.out, "✓ NO SIGNIFICANT BIAS DETECTED")
	fmt.Fprintln(p.out, "All demographic groups are within 80% of the top group.")
}

// PrintResumes outputs up to limit enriched records as a table
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResumes(records []types.EnrichedRecord, limit int) {
	if len(records) == 0 {
		return
	}
	count := min(len(records), limit)

	fmt.Fprintf(p.out, "%-22s %-8s %6s %-9s %6s %6s\n", "NAME", "GENDER", "G.CONF", "RACE", "R.CONF", "SCORE")
	for _, r := range records[:count] {
		name := r.Name
		if name == "" {
			name = "N/A"
		}
		fmt.Fprintf(p.out, "%-22s %-8s %6s %-9s %6s %6.1f\n",
			truncate(name, 22),
			r.InferredGender,
			confidence(r.GenderConfidence),
			r.InferredRace,
			confidence(r.RaceConfidence),
			r.MatchScore,
		)
	}
	if len(records) > count {
		p.dim.Fprintf(p.out, "... and %d more\n", len(records)-count)
	}
}

func confidence(c float64) string {
	if c == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", c*100)
}

// PrintResult outputs the summary, chart, verdict and resume table
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResult(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintSummary(result)
	p.PrintChart(result.Groups)
	fmt.Fprintln(p.out)
	p.PrintVerdict(result)
	fmt.Fprintln(p.out)
	p.PrintResumes(result.Resumes, DefaultResumeRows)
}
