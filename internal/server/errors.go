package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-bias-checker/internal/ingestion"
	"github.com/jonathan/resume-bias-checker/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Wrapped errors are matched through their chain.
func HTTPStatus(err error) int {
	var (
		maxBytesErr   *http.MaxBytesError
		validationErr *ErrValidation
		parseErr      *ingestion.ParseError
		sessionErr    *store.SessionError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &sessionErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
