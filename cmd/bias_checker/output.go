package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-bias-checker/internal/rendering"
	"github.com/jonathan/resume-bias-checker/internal/store"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

// outputFlags are the destinations shared by analyze and sample
type outputFlags struct {
	out    string
	report string
	pdf    bool
	noSave bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write the analysis result as JSON to this file")
	cmd.Flags().StringVar(&o.report, "report", "", "Write the report to this file (LaTeX, or PDF with --pdf)")
	cmd.Flags().BoolVar(&o.pdf, "pdf", false, "Compile the report to PDF with pdflatex")
	cmd.Flags().BoolVar(&o.noSave, "no-save", false, "Keep the stored session unchanged")
}

// finish prints result, replaces the stored session and writes the requested outputs
func (a *app) finish(ctx context.Context, result *types.AnalysisResult, o *outputFlags) error {
	a.printer.PrintResult(result)

	if !o.noSave {
		if err := a.saveSession(ctx, result); err != nil {
			return err
		}
	}

	if o.out != "" {
		if err := writeJSON(o.out, result); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Results written to %s\n", o.out)
	}

	if o.report != "" || o.pdf {
		path, err := a.exportReport(ctx, result, o.report, o.pdf)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Report written to %s\n", path)
	}
	return nil
}

func (a *app) saveSession(ctx context.Context, result *types.AnalysisResult) error {
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer a.closeStore(st)

	if err := store.SaveSession(ctx, st, a.cfg.SessionKey, result.Resumes); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	a.logger.Info("session saved",
		zap.String("backend", a.cfg.Store.Backend),
		zap.String("key", a.cfg.SessionKey),
		zap.Int("resumes", len(result.Resumes)),
	)
	return nil
}

// restore loads the stored session, pointing the user at analyze when there is none
func (a *app) restore(ctx context.Context) (*types.AnalysisResult, error) {
	st, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer a.closeStore(st)

	result, err := store.Restore(ctx, st, a.cfg.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("no usable session under %q, run analyze or sample first: %w", a.cfg.SessionKey, err)
	}
	return result, nil
}

// exportReport renders result and writes it to path, compiling to PDF when
// pdf is set. An empty path uses the dated default file name. Nothing is
// written when rendering or compilation fails.
func (a *app) exportReport(ctx context.Context, result *types.AnalysisResult, path string, pdf bool) (string, error) {
	now := time.Now()
	tex, err := rendering.RenderLaTeX(rendering.BuildReportData(result, now))
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	content, ext := []byte(tex), "tex"
	if pdf {
		content, err = rendering.CompilePDF(ctx, tex, a.cfg.Report.WorkDir)
		if err != nil {
			return "", fmt.Errorf("failed to export PDF: %w", err)
		}
		ext = "pdf"
	}

	if path == "" {
		path = rendering.ReportFileName(now, ext)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
