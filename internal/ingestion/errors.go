package ingestion

import "fmt"

// ParseError represents a failure to read the delimited input as a table.
// A parse error aborts processing for that file only.
type ParseError struct {
	Message string
	Line    int
	Cause   error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", e.Message, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
