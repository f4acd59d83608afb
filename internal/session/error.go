package session

import (
	"fmt"

	"superapp-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrMissingUser   = fmt.Errorf("%w: user id is required", apperr.ErrValidation)
	ErrNotCartKind   = fmt.Errorf("%w: kind cannot be checked out from the cart", apperr.ErrValidation)
	ErrEmptyCartKind = fmt.Errorf("%w: no cart lines of this kind", apperr.ErrValidation)
)
