package cart

// Validate checks the fields AddLine relies on. Lines placed directly as
// orders (rides) go through ValidateItem instead, which accepts any kind.
func (l Line) Validate() error {
	if err := l.ValidateItem(); err != nil {
		return err
	}
	if !l.Kind.IsCartKind() {
		return ErrInvalidKind
	}
	return nil
}

func (l Line) ValidateItem() error {
	if l.ID == "" {
		return ErrMissingLineID
	}
	if !l.Kind.IsValid() {
		return ErrInvalidKind
	}
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if l.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
