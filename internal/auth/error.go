package auth

import (
	"fmt"

	"superapp-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrInvalidPhone = fmt.Errorf("%w: invalid phone number", apperr.ErrValidation)
	ErrInvalidCode  = fmt.Errorf("%w: invalid or expired code", apperr.ErrValidation)
	ErrTooManyTries = fmt.Errorf("%w: too many attempts, request a new code", apperr.ErrValidation)
)
