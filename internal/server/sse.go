package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-bias-checker/internal/types"
)

// SSE event names
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent(EventError, map[string]string{"error": message}) //nolint:errcheck
}

// CompletePayload is the data of the final event of a stream
type CompletePayload struct {
	RunID  string                `json:"run_id"`
	Status string                `json:"status"`
	Result *types.AnalysisResult `json:"result"`
}

// WriteComplete sends a completion event carrying the analysis result
func (s *SSEWriter) WriteComplete(result *types.AnalysisResult) {
	s.WriteEvent(EventComplete, CompletePayload{ //nolint:errcheck
		RunID:  result.RunID,
		Status: "completed",
		Result: result,
	})
}
