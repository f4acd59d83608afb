package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"superapp-be/internal/apperr"
	"superapp-be/internal/cart"
	"superapp-be/internal/idgen"
	"superapp-be/internal/kind"
	"superapp-be/internal/logger"
	"superapp-be/internal/metrics"
	"superapp-be/internal/observer"

	"go.uber.org/zap"
)

// IDGenerator issues order ids.
type IDGenerator interface {
	NewID() string
}

// Service is the order ledger of one session.
type Service interface {
	// PlaceOrder snapshots lines into a new PENDING order. It does not touch
	// any cart; clearing the cart is up to the caller.
	PlaceOrder(ctx context.Context, lines []cart.Line, k kind.Kind, meta *Meta) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	// UpdateRating is allowed at any status, once per order.
	UpdateRating(ctx context.Context, id string, rating int) (*Order, error)
	// ClearAll removes every order. Destructive, used on logout/account reset.
	ClearAll(ctx context.Context)

	Get(id string) (*Order, error)
	List() []Order
	ListByKind(k kind.Kind) []Order

	// Flush re-saves the ledger if the last write failed.
	Flush(ctx context.Context) error
	Dirty() bool

	// Subscribe registers fn for every applied mutation. Events from
	// concurrent callers may arrive out of order; Event.Seq gives the order
	// the mutations were applied in.
	Subscribe(fn func(Event)) (unsubscribe func())
}

type Option func(*service)

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *service) { s.ids = ids }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	mu     sync.Mutex
	orders []Order
	repo   Repository
	ids    IDGenerator
	now    func() time.Time
	seq    uint64
	hub    observer.Hub[Event]
}

// NewService restores the ledger from repo before returning it. Unreadable
// state is logged by the repository and the ledger starts empty.
func NewService(ctx context.Context, repo Repository, opts ...Option) Service {
	s := &service{
		repo: repo,
		ids:  idgen.New(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	orders, err := repo.LoadOrders(ctx)
	if err == nil {
		s.orders = cloneOrders(orders)
	}

	logger.FromCtx(ctx).Debug("order ledger restored",
		zap.Int("orders", len(s.orders)),
		zap.Bool("load_failed", err != nil),
	)
	return s
}

func (s *service) PlaceOrder(ctx context.Context, lines []cart.Line, k kind.Kind, meta *Meta) (*Order, error) {
	if err := ValidatePlacement(lines, k, meta); err != nil {
		return nil, err
	}

	items := cart.CloneLines(lines)
	o := Order{
		Items:  items,
		Kind:   k,
		Total:  cart.Total(items),
		Status: StatusPending,
	}
	if meta != nil {
		o.Meta = meta.clone()
	}

	s.mu.Lock()
	o.ID = s.ids.NewID()
	o.PlacedAt = s.now().UTC()
	s.orders = append(s.orders, o)
	s.persistLocked(ctx)
	placed := o.Clone()
	seq := s.nextSeqLocked()
	s.mu.Unlock()
	metrics.OrdersPlaced.Inc()

	logger.FromCtx(ctx).Info("order placed",
		zap.String("order_id", placed.ID),
		zap.String("kind", k.String()),
		zap.String("total", placed.Total.String()),
		zap.Int("items", len(placed.Items)),
	)

	s.publish(Event{Seq: seq, Type: EventOrderPlaced, Order: placed})
	return &placed, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrOrderNotFound
	}

	prev := s.orders[idx].Status
	if !CanTransition(prev, status) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, prev, status)
	}

	s.orders[idx].Status = status
	s.persistLocked(ctx)
	updated := s.orders[idx].Clone()
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	logger.FromCtx(ctx).Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", string(prev)),
		zap.String("to", string(status)),
	)

	s.publish(Event{Seq: seq, Type: EventOrderStatusChanged, Order: updated, PreviousStatus: prev})
	return &updated, nil
}

func (s *service) UpdateRating(ctx context.Context, id string, rating int) (*Order, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrOrderNotFound
	}
	if s.orders[idx].Rating != nil {
		s.mu.Unlock()
		return nil, ErrRatingFinal
	}

	r := rating
	s.orders[idx].Rating = &r
	s.persistLocked(ctx)
	updated := s.orders[idx].Clone()
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	logger.FromCtx(ctx).Info("order rated",
		zap.String("order_id", id),
		zap.Int("rating", rating),
	)

	s.publish(Event{Seq: seq, Type: EventOrderRated, Order: updated})
	return &updated, nil
}

func (s *service) ClearAll(ctx context.Context) {
	s.mu.Lock()
	n := len(s.orders)
	s.orders = nil
	s.persistLocked(ctx)
	seq := s.nextSeqLocked()
	s.mu.Unlock()

	logger.FromCtx(ctx).Warn("order ledger cleared", zap.Int("orders", n))

	s.publish(Event{Seq: seq, Type: EventOrdersCleared})
}

func (s *service) Get(id string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, ErrOrderNotFound
	}
	o := s.orders[idx].Clone()
	return &o, nil
}

func (s *service) List() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrders(s.orders)
}

func (s *service) ListByKind(k kind.Kind) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, 0)
	for _, o := range s.orders {
		if o.Kind == k {
			out = append(out, o.Clone())
		}
	}
	return out
}

func (s *service) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.repo.Dirty() {
		return nil
	}
	return s.repo.SaveOrders(ctx, cloneOrders(s.orders))
}

func (s *service) Dirty() bool {
	return s.repo.Dirty()
}

func (s *service) Subscribe(fn func(Event)) func() {
	return s.hub.Subscribe(fn)
}

func (s *service) indexLocked(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the whole ledger. A failed write keeps the in-memory
// state authoritative; the repository logs it and the next mutation retries.
func (s *service) persistLocked(ctx context.Context) {
	_ = s.repo.SaveOrders(ctx, cloneOrders(s.orders))
}

func (s *service) nextSeqLocked() uint64 {
	s.seq++
	return s.seq
}

func (s *service) publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now().UTC()
	}
	s.hub.Publish(e)
}

// ValidatePlacement reports whether PlaceOrder would accept lines, k and meta.
func ValidatePlacement(lines []cart.Line, k kind.Kind, meta *Meta) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	if !k.IsValid() {
		return ErrInvalidKind
	}
	for _, l := range lines {
		if err := l.ValidateItem(); err != nil {
			return err
		}
	}
	return validateMeta(meta)
}

func validateMeta(meta *Meta) error {
	if meta == nil {
		return nil
	}
	if meta.PaymentMethod != "" && !paymentMethods[meta.PaymentMethod] {
		return ErrInvalidPayment
	}
	if meta.Discount != nil && meta.Discount.IsNegative() {
		return ErrNegativeDiscount
	}
	return nil
}
