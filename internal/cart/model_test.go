package cart

import (
	"testing"

	"superapp-be/internal/kind"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLine_Subtotal(t *testing.T) {
	l := Line{ID: "a", Kind: kind.Food, UnitPrice: decimal.RequireFromString("12.50"), Quantity: 3}
	assert.True(t, decimal.RequireFromString("37.5").Equal(l.Subtotal()))
}

func TestCloneLines(t *testing.T) {
	t.Run("Nil input", func(t *testing.T) {
		out := CloneLines(nil)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("Deep copy", func(t *testing.T) {
		in := []Line{{ID: "a", Variant: Variant{Extras: []string{"x"}}}}
		out := CloneLines(in)
		out[0].Variant.Extras[0] = "y"
		assert.Equal(t, "x", in[0].Variant.Extras[0])
	})
}

func TestLine_ValidateItem(t *testing.T) {
	ride := Line{ID: "r1", Kind: kind.Ride, UnitPrice: decimal.NewFromInt(150), Quantity: 1}
	assert.NoError(t, ride.ValidateItem())
	assert.ErrorIs(t, ride.Validate(), ErrInvalidKind)

	unknown := Line{ID: "x", Kind: kind.Kind("PETS"), UnitPrice: decimal.NewFromInt(1), Quantity: 1}
	assert.ErrorIs(t, unknown.ValidateItem(), ErrInvalidKind)
}
