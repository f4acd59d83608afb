package apperr

import (
	"errors"
	"net/http"
)

// Error categories. Package level errors wrap one of these so callers can
// branch with errors.Is without knowing every concrete error.
var (
	// -- Caller supplied an out-of-contract value --
	ErrValidation = errors.New("validation error")

	// -- Referenced id does not exist --
	ErrNotFound = errors.New("not found")

	// -- Status change not allowed by the state machine --
	ErrInvalidTransition = errors.New("invalid transition")

	// -- Durable storage read/write failed (non-fatal) --
	ErrPersistence = errors.New("persistence error")
)

// HTTPStatus maps an error category to the status code the transport layer
// should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
