package cart

import (
	"superapp-be/internal/kind"

	"github.com/shopspring/decimal"
)

// Variant holds the attributes a customer picked for a catalog item.
type Variant struct {
	Size     string   `json:"size,omitempty"`
	Color    string   `json:"color,omitempty"`
	ImageRef string   `json:"image_ref,omitempty"`
	Extras   []string `json:"extras,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Line is one catalog item in the cart. (ID, Kind) is unique within a cart.
type Line struct {
	ID        string          `json:"id"`
	Kind      kind.Kind       `json:"kind"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Variant   Variant         `json:"variant"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Clone returns a copy sharing no memory with l.
func (l Line) Clone() Line {
	c := l
	if l.Variant.Extras != nil {
		c.Variant.Extras = append([]string(nil), l.Variant.Extras...)
	}
	return c
}

func (l Line) matches(id string, k kind.Kind) bool {
	return l.ID == id && l.Kind == k
}

// CloneLines deep-copies lines. A nil input yields an empty, non-nil slice.
func CloneLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Clone())
	}
	return out
}

// Total sums UnitPrice * Quantity over lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
