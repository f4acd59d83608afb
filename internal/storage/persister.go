package storage

import (
	"context"
	"sync"

	"superapp-be/internal/logger"
	"superapp-be/internal/metrics"

	"go.uber.org/zap"
)

// Persister writes a store's full state after every mutation. A failed write
// leaves it dirty; since every save carries the whole state, the next save
// (or an explicit retry through Persist) repairs it.
type Persister[T any] struct {
	blob *Blob[T]

	mu      sync.Mutex
	dirty   bool
	lastErr error
}

func NewPersister[T any](store Store, key string) *Persister[T] {
	return &Persister[T]{blob: NewBlob[T](store, key)}
}

// Restore loads the saved state. Missing or unreadable state yields the zero
// value: the failure is logged and returned, but callers are expected to
// carry on with an empty store.
func (p *Persister[T]) Restore(ctx context.Context) (T, error) {
	v, found, err := p.blob.Load(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to restore state, starting empty",
			zap.String("key", p.blob.Key()),
			zap.Error(err),
		)
		var zero T
		return zero, err
	}
	if !found {
		logger.FromCtx(ctx).Debug("no saved state", zap.String("key", p.blob.Key()))
	}
	return v, nil
}

func (p *Persister[T]) Persist(ctx context.Context, v T) error {
	err := p.blob.Save(ctx, v)

	p.mu.Lock()
	p.dirty = err != nil
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		metrics.PersistFailures.Inc()
		logger.FromCtx(ctx).Warn("failed to persist state, will retry on next change",
			zap.String("key", p.blob.Key()),
			zap.Error(err),
		)
	}
	return err
}

// Dirty reports whether the last write failed.
func (p *Persister[T]) Dirty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dirty
}

func (p *Persister[T]) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Persister[T]) Key() string {
	return p.blob.Key()
}
