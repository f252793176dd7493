package rendering

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed report.tex
var reportTemplate string

// Template delimiters that cannot collide with LaTeX braces
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

var parsedReport = template.Must(parseTemplate("report", reportTemplate))

// parseTemplate parses a LaTeX template with the escaping helpers installed
func parseTemplate(name, content string) (*template.Template, error) {
	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Funcs(template.FuncMap{"escape": EscapeLaTeX}).
		Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// RenderLaTeX renders the report document for data
func RenderLaTeX(data *ReportData) (string, error) {
	return execute(parsedReport, data)
}

// RenderLaTeXWithTemplate renders data through a caller-supplied template
// using the same delimiters and helpers as the built-in report
func RenderLaTeXWithTemplate(content string, data *ReportData) (string, error) {
	tmpl, err := parseTemplate("custom", content)
	if err != nil {
		return "", err
	}
	return execute(tmpl, data)
}

func execute(tmpl *template.Template, data *ReportData) (string, error) {
	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}
