package cart

import (
	"context"

	"superapp-be/internal/storage"
)

// Repository saves the cart lines of one session.
type Repository interface {
	LoadLines(ctx context.Context) ([]Line, error)
	SaveLines(ctx context.Context, lines []Line) error
	Dirty() bool
}

type repository struct {
	p *storage.Persister[[]Line]
}

// NewRepository stores the lines as one JSON blob under key.
func NewRepository(store storage.Store, key string) Repository {
	return &repository{p: storage.NewPersister[[]Line](store, key)}
}

// LoadLines returns nil, nil when nothing was saved yet.
func (r *repository) LoadLines(ctx context.Context) ([]Line, error) {
	return r.p.Restore(ctx)
}

func (r *repository) SaveLines(ctx context.Context, lines []Line) error {
	return r.p.Persist(ctx, lines)
}

func (r *repository) Dirty() bool {
	return r.p.Dirty()
}
