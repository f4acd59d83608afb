package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
			WithArgs("orders:1").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

		v, err := store.Get(ctx, "orders:1")
		assert.NoError(t, err)
		assert.Equal(t, []byte(`[]`), v)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs("orders:2").
			WillReturnError(sql.ErrNoRows)

		_, err := store.Get(ctx, "orders:2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs("orders:3").
			WillReturnError(errors.New("connection reset"))

		_, err := store.Get(ctx, "orders:3")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "connection reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	ctx := context.Background()

	t.Run("Upsert", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO kv_store \(key, value, updated_at\).*ON CONFLICT \(key\)`).
			WithArgs("orders:1", []byte(`[{"id":"x"}]`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Set(ctx, "orders:1", []byte(`[{"id":"x"}]`)))
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO kv_store`).
			WillReturnError(errors.New("disk full"))

		err := store.Set(ctx, "orders:1", []byte(`[]`))
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs("liked:1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), "liked:1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
