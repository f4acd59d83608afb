package ride

import (
	"fmt"

	"superapp-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrMissingPickup = fmt.Errorf("%w: pickup is required", apperr.ErrValidation)
	ErrMissingDrop   = fmt.Errorf("%w: drop is required", apperr.ErrValidation)
	ErrInvalidStatus = fmt.Errorf("%w: unknown ride status", apperr.ErrValidation)
	ErrRideActive    = fmt.Errorf("%w: a ride is already in progress", apperr.ErrValidation)

	// -- Resource State --
	ErrRideNotFound = fmt.Errorf("%w: ride", apperr.ErrNotFound)
)
