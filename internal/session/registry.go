package session

import (
	"context"
	"errors"
	"sync"

	"superapp-be/internal/cart"
	"superapp-be/internal/events"
	"superapp-be/internal/liked"
	"superapp-be/internal/logger"
	"superapp-be/internal/order"
	"superapp-be/internal/review"
	"superapp-be/internal/ride"
	"superapp-be/internal/storage"

	"go.uber.org/zap"
)

// Registry lazily builds one Session per user, all backed by the same store.
type Registry struct {
	store storage.Store
	pub   events.Publisher

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(store storage.Store, pub events.Publisher) *Registry {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Registry{
		store:    store,
		pub:      pub,
		sessions: make(map[string]*Session),
	}
}

func Key(collection, userID string) string {
	return collection + ":" + userID
}

// Get returns the user's session, restoring its stores on first use.
func (r *Registry) Get(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[userID]; ok {
		return s, nil
	}

	ctx = logger.WithUserID(ctx, userID)
	s := &Session{
		UserID:  userID,
		Cart:    cart.NewService(ctx, cart.NewRepository(r.store, Key("cart", userID))),
		Orders:  order.NewService(ctx, order.NewRepository(r.store, Key(order.DefaultKey, userID))),
		Liked:   liked.NewService(ctx, liked.NewRepository(r.store, Key(liked.DefaultKey, userID))),
		Reviews: review.NewService(ctx, review.NewRepository(r.store, Key(review.DefaultKey, userID))),
		Rides:   ride.NewService(ctx, ride.NewRepository(r.store, Key(ride.DefaultKey, userID))),
	}
	s.unsubscribe = events.Attach(s.Orders, userID, r.pub)
	r.sessions[userID] = s

	logger.FromCtx(ctx).Debug("session opened")
	return s, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close flushes every session. Errors are collected, not short-circuited.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for id, s := range r.sessions {
		if err := s.Close(ctx); err != nil {
			logger.FromCtx(ctx).Warn("session flush failed", zap.String("user_id", id), zap.Error(err))
			errs = append(errs, err)
		}
	}
	r.sessions = make(map[string]*Session)
	return errors.Join(errs...)
}
