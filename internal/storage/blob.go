package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"superapp-be/internal/apperr"
)

// Blob serializes one value as JSON under a fixed key.
type Blob[T any] struct {
	store Store
	key   string
}

func NewBlob[T any](store Store, key string) *Blob[T] {
	return &Blob[T]{store: store, key: key}
}

func (b *Blob[T]) Key() string {
	return b.key
}

// Load returns found=false with a nil error when the key is absent.
// Read and decode failures are wrapped in apperr.ErrPersistence.
func (b *Blob[T]) Load(ctx context.Context) (T, bool, error) {
	var v T

	raw, err := b.store.Get(ctx, b.key)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("%w: load %s: %v", apperr.ErrPersistence, b.key, err)
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, false, fmt.Errorf("%w: decode %s: %v", apperr.ErrPersistence, b.key, err)
	}
	return v, true, nil
}

func (b *Blob[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", apperr.ErrPersistence, b.key, err)
	}
	if err := b.store.Set(ctx, b.key, raw); err != nil {
		return fmt.Errorf("%w: save %s: %v", apperr.ErrPersistence, b.key, err)
	}
	return nil
}
