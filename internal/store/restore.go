package store

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-bias-checker/internal/pipeline"
	"github.com/jonathan/resume-bias-checker/internal/schemas"
	"github.com/jonathan/resume-bias-checker/internal/types"
)

// LoadSession loads and validates the enriched records stored under key.
// Returns ErrNotFound when nothing is stored and *SessionError when the
// document is malformed, empty, or was saved before inference ran.
func LoadSession(ctx context.Context, s Store, key string) ([]types.EnrichedRecord, error) {
	data, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateEnrichedRecords(data); err != nil {
		return nil, &SessionError{Key: key, Message: "stored document does not match schema", Cause: err}
	}

	var records []types.EnrichedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &SessionError{Key: key, Message: "failed to decode stored document", Cause: err}
	}
	if len(records) == 0 {
		return nil, &SessionError{Key: key, Message: "stored session is empty"}
	}
	if !records[0].IsEnriched() {
		return nil, &SessionError{Key: key, Message: "stored records carry no inferred labels"}
	}
	return records, nil
}

// Restore loads the session under key and recomputes groups and verdict
// from the stored labels without re-running inference.
func Restore(ctx context.Context, s Store, key string) (*types.AnalysisResult, error) {
	records, err := LoadSession(ctx, s, key)
	if err != nil {
		return nil, err
	}
	return pipeline.Analyze(records), nil
}
