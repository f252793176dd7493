package rendering

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CompilationTimeout is the maximum time to wait for one pdflatex pass
	CompilationTimeout = 30 * time.Second

	pdflatexBinary = "pdflatex"
	texFileName    = "report.tex"
	// two passes resolve the LastPage reference in the footer
	compilePasses = 2
)

// CompilePDF compiles tex with pdflatex inside workDir and returns the PDF
// bytes. An empty workDir uses a temporary directory that is removed
// afterwards.
func CompilePDF(ctx context.Context, tex string, workDir string) ([]byte, error) {
	if _, err := exec.LookPath(pdflatexBinary); err != nil {
		return nil, &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	if workDir == "" {
		tmp, err := os.MkdirTemp("", "bias-report-*")
		if err != nil {
			return nil, &CompilationError{
				Message: "failed to create temporary working directory",
				Cause:   err,
			}
		}
		defer func() { _ = os.RemoveAll(tmp) }()
		workDir = tmp
	} else if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}

	texPath := filepath.Join(workDir, texFileName)
	if err := os.WriteFile(texPath, []byte(tex), 0o644); err != nil {
		return nil, &CompilationError{
			Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir),
			Cause:   err,
		}
	}

	var logOutput strings.Builder
	var runErr error
	for pass := 0; pass < compilePasses; pass++ {
		runErr = runPDFLaTeX(ctx, workDir, texPath, &logOutput)
		if ctx.Err() != nil {
			return nil, &CompilationError{
				Message:   "LaTeX compilation cancelled",
				LogOutput: logOutput.String(),
				Cause:     ctx.Err(),
			}
		}
	}

	pdfPath := strings.TrimSuffix(texPath, ".tex") + ".pdf"
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, &CompilationError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput.String(),
			Cause:     firstErr(runErr, err),
		}
	}

	// pdflatex exits non-zero on recoverable errors; a produced PDF is still usable
	return pdf, nil
}

func runPDFLaTeX(ctx context.Context, workDir, texPath string, logOutput *strings.Builder) error {
	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	// Use -interaction=nonstopmode to prevent interactive prompts
	cmd := exec.CommandContext(ctx, pdflatexBinary, "-interaction=nonstopmode", "-output-directory", workDir, texPath)
	cmd.Dir = workDir
	cmd.Stdout = logOutput
	cmd.Stderr = logOutput
	return cmd.Run()
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
