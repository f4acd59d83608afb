package order

import (
	"context"

	"superapp-be/internal/storage"
)

// DefaultKey is the storage key of a single-user ledger.
const DefaultKey = "orders"

// Repository is the durable side of the ledger: the full order list is
// written as one blob.
type Repository interface {
	// LoadOrders returns nil, nil when nothing was saved yet.
	LoadOrders(ctx context.Context) ([]Order, error)
	SaveOrders(ctx context.Context, orders []Order) error
	// Dirty reports whether the last save failed.
	Dirty() bool
}

type repository struct {
	p *storage.Persister[[]Order]
}

func NewRepository(store storage.Store, key string) Repository {
	if key == "" {
		key = DefaultKey
	}
	return &repository{p: storage.NewPersister[[]Order](store, key)}
}

func (r *repository) LoadOrders(ctx context.Context) ([]Order, error) {
	return r.p.Restore(ctx)
}

func (r *repository) SaveOrders(ctx context.Context, orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	return r.p.Persist(ctx, orders)
}

func (r *repository) Dirty() bool {
	return r.p.Dirty()
}
