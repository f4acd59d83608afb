package session

import (
	"context"
	"fmt"

	"superapp-be/internal/cart"
	"superapp-be/internal/kind"
	"superapp-be/internal/liked"
	"superapp-be/internal/logger"
	"superapp-be/internal/order"
	"superapp-be/internal/review"
	"superapp-be/internal/ride"

	"go.uber.org/zap"
)

// Session groups the stores owned by one user.
type Session struct {
	UserID  string
	Cart    cart.Service
	Orders  order.Service
	Liked   liked.Service
	Reviews review.Service
	Rides   ride.Service

	unsubscribe func()
}

// Checkout places one order from the cart lines of kind k and removes
// exactly those lines. Lines of other kinds stay in the cart. The order is
// validated before anything leaves the cart, so a rejected checkout leaves
// the cart as it was.
func (s *Session) Checkout(ctx context.Context, k kind.Kind, meta *order.Meta) (*order.Order, error) {
	if !k.IsCartKind() {
		return nil, ErrNotCartKind
	}

	pending := s.Cart.LinesByKind(k)
	if len(pending) == 0 {
		return nil, ErrEmptyCartKind
	}
	if err := order.ValidatePlacement(pending, k, meta); err != nil {
		return nil, err
	}

	lines := s.Cart.RemoveKind(ctx, k)
	if len(lines) == 0 {
		return nil, ErrEmptyCartKind
	}

	o, err := s.Orders.PlaceOrder(ctx, lines, k, meta)
	if err != nil {
		for _, l := range lines {
			if rerr := s.Cart.AddLine(ctx, l); rerr != nil {
				logger.FromCtx(ctx).Error("failed to restore cart line after checkout error",
					zap.String("line_id", l.ID),
					zap.Error(rerr),
				)
			}
		}
		return nil, err
	}

	logger.FromCtx(ctx).Info("checkout complete",
		zap.String("order_id", o.ID),
		zap.String("kind", k.String()),
		zap.Int("lines", len(lines)),
	)
	return o, nil
}

// UpdateRideStatus advances a ride. Completing it records a delivered RIDE
// order for the fare, which is returned alongside the ride.
func (s *Session) UpdateRideStatus(ctx context.Context, id string, status ride.Status) (*ride.Ride, *order.Order, error) {
	r, err := s.Rides.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, nil, err
	}
	if r.Status != ride.StatusCompleted {
		return r, nil, nil
	}

	o, err := s.recordRide(ctx, r)
	if err != nil {
		return r, nil, err
	}
	return r, o, nil
}

func (s *Session) recordRide(ctx context.Context, r *ride.Ride) (*order.Order, error) {
	line := cart.Line{
		ID:        r.ID,
		Kind:      kind.Ride,
		Name:      fmt.Sprintf("Ride: %s to %s", r.Pickup, r.Drop),
		UnitPrice: r.Fare,
		Quantity:  1,
	}
	o, err := s.Orders.PlaceOrder(ctx, []cart.Line{line}, kind.Ride, nil)
	if err != nil {
		return nil, err
	}

	// the ride already happened; walk the order to its delivered state
	for _, st := range []order.Status{order.StatusConfirmed, order.StatusInProgress, order.StatusDelivered} {
		if o, err = s.Orders.UpdateStatus(ctx, o.ID, st); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Close detaches the session from the event publisher and retries any
// failed ledger write.
func (s *Session) Close(ctx context.Context) error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	return s.Orders.Flush(ctx)
}
