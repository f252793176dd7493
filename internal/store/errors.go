package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no document is stored under the key
var ErrNotFound = errors.New("session not found")

// SessionError represents a stored session that cannot be restored
type SessionError struct {
	Key     string
	Message string
	Cause   error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid session %q: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid session %q: %s", e.Key, e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}

// ConnectError represents a failure to open a store backend.
// Permanent failures (bad configuration) are not retried.
type ConnectError struct {
	Backend   string
	Message   string
	Permanent bool
	Cause     error
}

func (e *ConnectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s store: %s", e.Backend, e.Message)
}

func (e *ConnectError) Unwrap() error {
	return e.Cause
}
