package kind

import (
	"fmt"
	"strings"

	"superapp-be/internal/apperr"
)

// Kind partitions carts, orders and liked items into independent
// sub-collections.
type Kind string

const (
	Ride     Kind = "RIDE"
	Food     Kind = "FOOD"
	Shopping Kind = "SHOPPING"
)

var known = map[Kind]bool{
	Ride:     true,
	Food:     true,
	Shopping: true,
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return known[k]
}

// IsCartKind reports whether lines of this kind may live in a cart.
// Rides are ordered directly and never sit in a cart.
func (k Kind) IsCartKind() bool {
	return k == Food || k == Shopping
}

func (k Kind) String() string {
	return string(k)
}

// Parse accepts any casing ("food", "Food", "FOOD").
func Parse(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown kind %q", apperr.ErrValidation, s)
	}
	return k, nil
}
