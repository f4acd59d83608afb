package order

import (
	"fmt"

	"superapp-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrEmptyOrder       = fmt.Errorf("%w: order must contain at least one item", apperr.ErrValidation)
	ErrInvalidKind      = fmt.Errorf("%w: unknown order kind", apperr.ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: unknown order status", apperr.ErrValidation)
	ErrInvalidRating    = fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrValidation)
	ErrRatingFinal      = fmt.Errorf("%w: order already rated", apperr.ErrValidation)
	ErrInvalidPayment   = fmt.Errorf("%w: unknown payment method", apperr.ErrValidation)
	ErrNegativeDiscount = fmt.Errorf("%w: discount must not be negative", apperr.ErrValidation)

	// -- Resource State --
	ErrOrderNotFound = fmt.Errorf("%w: order", apperr.ErrNotFound)
)
