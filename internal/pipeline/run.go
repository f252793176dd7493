// Package pipeline provides the high-level orchestration for one bias analysis pass:
// normalize, infer demographics, aggregate, and apply the 80% rule.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-bias-checker/internal/analysis"
	"github.com/jonathan/resume-bias-checker/internal/inference"
	"github.com/jonathan/resume-bias-checker/internal/ingestion"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

// Stage names reported through ProgressEvent.Step
const (
	StageDemographics = "Analyzing Demographics"
	StageBias         = "Analyzing Bias"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string  `json:"step"`
	Message string  `json:"message"`
	Percent float64 `json:"percent"`
	Current int     `json:"current,omitempty"`
	Total   int     `json:"total,omitempty"`
	RunID   string  `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	OnProgress ProgressCallback
	// Pacing is slept after each record. Zero disables it.
	Pacing time.Duration
	// Random supplies fallback scores during normalization (RunCSV only)
	Random ingestion.RandomSource
	Logger *zap.Logger
}

func (o RunOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// emitProgress calls the progress callback if configured
func emitProgress(opts RunOptions, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}

// Run enriches records in input order and analyzes the result. Cancellation
// is checked between records; a cancelled run returns ctx.Err() and no result.
func Run(ctx context.Context, records []types.ResumeRecord, opts RunOptions) (*types.AnalysisResult, error) {
	runID := uuid.New().String()
	log := opts.logger().With(zap.String("run_id", runID))
	total := len(records)

	log.Info("starting analysis", zap.Int("resumes", total))

	enriched := make([]types.EnrichedRecord, 0, total)
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			log.Warn("analysis cancelled", zap.Int("processed", i))
			return nil, err
		}

		emitProgress(opts, ProgressEvent{
			Step:    StageDemographics,
			Message: fmt.Sprintf("Processing resume %d of %d...", i+1, total),
			Percent: float64(i) / float64(total) * 100,
			Current: i + 1,
			Total:   total,
			RunID:   runID,
		})

		if opts.Pacing > 0 {
			if err := sleep(ctx, opts.Pacing); err != nil {
				log.Warn("analysis cancelled", zap.Int("processed", i))
				return nil, err
			}
		}

		enriched = append(enriched, inference.Enrich(record))
	}

	emitProgress(opts, ProgressEvent{
		Step:    StageBias,
		Message: "Calculating bias metrics...",
		Percent: 100,
		Total:   total,
		RunID:   runID,
	})

	result := Analyze(enriched)
	result.RunID = runID

	log.Info("analysis complete",
		zap.Int("groups", len(result.Groups)),
		zap.Bool("bias_detected", result.BiasDetected),
		zap.Float64("threshold", result.Threshold),
	)
	return result, nil
}

// Analyze aggregates already-enriched records without re-running inference
func Analyze(enriched []types.EnrichedRecord) *types.AnalysisResult {
	groups := analysis.GroupByDemographic(enriched)
	bias := analysis.DetectBias(groups)

	return &types.AnalysisResult{
		CreatedAt:      time.Now().UTC(),
		ResumeCount:    len(enriched),
		Resumes:        enriched,
		Groups:         groups,
		BiasDetected:   bias,
		Threshold:      analysis.Threshold(groups),
		OverallAverage: analysis.OverallAverage(groups),
		RiskLevel:      analysis.RiskLevel(bias),
	}
}

// RunCSV parses and normalizes a CSV upload, then runs the pipeline on it.
// A parse failure aborts before any record is processed.
func RunCSV(ctx context.Context, r io.Reader, opts RunOptions) (*types.AnalysisResult, error) {
	rows, err := ingestion.ParseCSV(r)
	if err != nil {
		opts.logger().Error("failed to parse CSV", zap.Error(err))
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	records := ingestion.NewNormalizer(opts.Random, opts.logger()).Normalize(rows)
	return Run(ctx, records, opts)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
