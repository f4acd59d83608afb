package liked

import (
	"fmt"

	"superapp-be/internal/apperr"
)

var (
	// -- Validation & Input --
	ErrMissingItemID = fmt.Errorf("%w: liked item id is required", apperr.ErrValidation)
	ErrInvalidKind   = fmt.Errorf("%w: unknown item kind", apperr.ErrValidation)
)
