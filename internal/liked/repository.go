package liked

import (
	"context"

	"superapp-be/internal/storage"
)

const DefaultKey = "liked"

type Repository interface {
	LoadItems(ctx context.Context) ([]Item, error)
	SaveItems(ctx context.Context, items []Item) error
}

type repository struct {
	p *storage.Persister[[]Item]
}

func NewRepository(store storage.Store, key string) Repository {
	if key == "" {
		key = DefaultKey
	}
	return &repository{p: storage.NewPersister[[]Item](store, key)}
}

func (r *repository) LoadItems(ctx context.Context) ([]Item, error) {
	return r.p.Restore(ctx)
}

func (r *repository) SaveItems(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	return r.p.Persist(ctx, items)
}
