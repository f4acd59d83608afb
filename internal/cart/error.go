package cart

import (
	"fmt"

	"superapp-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be greater than zero", apperr.ErrValidation)
	ErrNegativePrice   = fmt.Errorf("%w: unit price must not be negative", apperr.ErrValidation)
	ErrMissingLineID   = fmt.Errorf("%w: line id is required", apperr.ErrValidation)
	ErrInvalidKind     = fmt.Errorf("%w: kind must be FOOD or SHOPPING", apperr.ErrValidation)

	// -- Resource State --
	ErrLineNotFound = fmt.Errorf("%w: cart line", apperr.ErrNotFound)
)
