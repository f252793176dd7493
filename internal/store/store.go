// Package store persists the enriched-record list of the current analysis
// session so a later run can restore it without re-running inference.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-bias-checker/internal/types"
)

// DefaultSessionKey is the key the current session is stored under
const DefaultSessionKey = "resumeData"

// Store holds raw session documents by key
type Store interface {
	// Save replaces the document stored under key
	Save(ctx context.Context, key string, data []byte) error
	// Load returns ErrNotFound when nothing is stored under key
	Load(ctx context.Context, key string) ([]byte, error)
	// Delete removes key; a missing key is not an error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SaveSession marshals records and replaces the session stored under key
func SaveSession(ctx context.Context, s Store, key string, records []types.EnrichedRecord) error {
	if records == nil {
		records = []types.EnrichedRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save session %q: %w", key, err)
	}
	return nil
}
