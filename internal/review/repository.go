package review

import (
	"context"

	"superapp-be/internal/storage"
)

const DefaultKey = "reviews"

type Repository interface {
	LoadReviews(ctx context.Context) ([]Review, error)
	SaveReviews(ctx context.Context, reviews []Review) error
}

type repository struct {
	p *storage.Persister[[]Review]
}

func NewRepository(store storage.Store, key string) Repository {
	if key == "" {
		key = DefaultKey
	}
	return &repository{p: storage.NewPersister[[]Review](store, key)}
}

func (r *repository) LoadReviews(ctx context.Context) ([]Review, error) {
	return r.p.Restore(ctx)
}

func (r *repository) SaveReviews(ctx context.Context, reviews []Review) error {
	if reviews == nil {
		reviews = []Review{}
	}
	return r.p.Persist(ctx, reviews)
}
