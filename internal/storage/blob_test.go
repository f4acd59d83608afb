package storage

import (
	"context"
	"errors"
	"testing"

	"superapp-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	err error
}

func (b brokenStore) Get(context.Context, string) ([]byte, error) { return nil, b.err }
func (b brokenStore) Set(context.Context, string, []byte) error   { return b.err }
func (b brokenStore) Delete(context.Context, string) error        { return b.err }

type record struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

func TestBlob(t *testing.T) {
	ctx := context.Background()

	t.Run("Absent key", func(t *testing.T) {
		b := NewBlob[[]record](NewMemoryStore(), "orders")

		v, found, err := b.Load(ctx)
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, v)
	})

	t.Run("Round trip", func(t *testing.T) {
		b := NewBlob[[]record](NewMemoryStore(), "orders")
		in := []record{{ID: "a", Tags: []string{"x"}}, {ID: "b"}}

		require.NoError(t, b.Save(ctx, in))
		out, found, err := b.Load(ctx)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
		assert.Equal(t, "orders", b.Key())
	})

	t.Run("Empty list round trip", func(t *testing.T) {
		b := NewBlob[[]record](NewMemoryStore(), "orders")

		require.NoError(t, b.Save(ctx, []record{}))
		out, found, err := b.Load(ctx)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []record{}, out)
	})

	t.Run("Corrupt blob", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "orders", []byte("{not json")))

		_, found, err := NewBlob[[]record](store, "orders").Load(ctx)
		assert.False(t, found)
		assert.ErrorIs(t, err, apperr.ErrPersistence)
	})

	t.Run("Store failures", func(t *testing.T) {
		b := NewBlob[[]record](brokenStore{err: errors.New("io")}, "orders")

		_, _, err := b.Load(ctx)
		assert.ErrorIs(t, err, apperr.ErrPersistence)

		err = b.Save(ctx, nil)
		assert.ErrorIs(t, err, apperr.ErrPersistence)
	})
}
