package review

import (
	"fmt"

	"superapp-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrMissingAuthor  = fmt.Errorf("%w: author is required", apperr.ErrValidation)
	ErrMissingComment = fmt.Errorf("%w: comment is required", apperr.ErrValidation)
	ErrInvalidRating  = fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrValidation)
)
