package ride

import (
	"context"

	"superapp-be/internal/storage"
)

const DefaultKey = "rides"

type Repository interface {
	LoadRides(ctx context.Context) ([]Ride, error)
	SaveRides(ctx context.Context, rides []Ride) error
}

type repository struct {
	p *storage.Persister[[]Ride]
}

func NewRepository(store storage.Store, key string) Repository {
	if key == "" {
		key = DefaultKey
	}
	return &repository{p: storage.NewPersister[[]Ride](store, key)}
}

func (r *repository) LoadRides(ctx context.Context) ([]Ride, error) {
	return r.p.Restore(ctx)
}

func (r *repository) SaveRides(ctx context.Context, rides []Ride) error {
	if rides == nil {
		rides = []Ride{}
	}
	return r.p.Persist(ctx, rides)
}
