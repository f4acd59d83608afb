package order

import (
	"time"

	"superapp-be/internal/cart"
	"superapp-be/internal/kind"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
)

var paymentMethods = map[PaymentMethod]bool{
	PaymentCOD:    true,
	PaymentCard:   true,
	PaymentUPI:    true,
	PaymentWallet: true,
}

// Meta carries optional checkout details supplied by the caller.
type Meta struct {
	DeliveryETA   string           `json:"delivery_eta,omitempty"`
	PaymentMethod PaymentMethod    `json:"payment_method,omitempty"`
	PromoCode     string           `json:"promo_code,omitempty"`
	Discount      *decimal.Decimal `json:"discount,omitempty"`
}

type Order struct {
	ID       string          `json:"id"`
	Items    []cart.Line     `json:"items"`
	Kind     kind.Kind       `json:"kind"`
	Total    decimal.Decimal `json:"total"`
	Status   Status          `json:"status"`
	PlacedAt time.Time       `json:"placed_at"`
	Rating   *int            `json:"rating,omitempty"`
	Meta
}

// Payable is the total minus the discount, never below zero.
func (o Order) Payable() decimal.Decimal {
	if o.Discount == nil {
		return o.Total
	}
	p := o.Total.Sub(*o.Discount)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// Clone returns a copy sharing no memory with o.
func (o Order) Clone() Order {
	c := o
	c.Items = cart.CloneLines(o.Items)
	if o.Rating != nil {
		r := *o.Rating
		c.Rating = &r
	}
	c.Meta = o.Meta.clone()
	return c
}

func (m Meta) clone() Meta {
	c := m
	if m.Discount != nil {
		d := *m.Discount
		c.Discount = &d
	}
	return c
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Clone())
	}
	return out
}
