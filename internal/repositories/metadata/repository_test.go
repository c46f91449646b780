package metadata

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "meta.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func setupFile(t *testing.T) *FileRepository {
	t.Helper()
	r, err := OpenFileRepository(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return r
}

// backends runs fn against every Repository implementation.
func backends(t *testing.T, fn func(t *testing.T, r Repository)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, NewSQLiteRepository(setupDB(t))) })
	t.Run("file", func(t *testing.T) { fn(t, setupFile(t)) })
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	backends(t, func(t *testing.T, r Repository) {
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))

		v, err := r.Get(ctx, "k1")
		require.NoError(t, err)
		require.Equal(t, []byte{0x01, 0x02}, v)
	})
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	backends(t, func(t *testing.T, r Repository) {
		v, err := r.Get(context.Background(), "absent")
		require.NoError(t, err)
		require.Nil(t, v)
	})
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	backends(t, func(t *testing.T, r Repository) {
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "k", []byte("old")))
		require.NoError(t, r.Set(ctx, "k", []byte("new")))

		v, err := r.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("new"), v)
	})
}

func TestList_ReturnsAllPairs(t *testing.T) {
	backends(t, func(t *testing.T, r Repository) {
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
		require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Len(t, m, 2)
		assert.Equal(t, []byte{0xAA}, m["a"])
		assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])
	})
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	backends(t, func(t *testing.T, r Repository) {
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
		require.NoError(t, r.Delete(ctx, "x"))

		v, err := r.Get(ctx, "x")
		require.NoError(t, err)
		require.Nil(t, v)

		require.NoError(t, r.Delete(ctx, "x"))
	})
}

func TestClear_RemovesAllKeys(t *testing.T) {
	backends(t, func(t *testing.T, r Repository) {
		ctx := context.Background()

		require.NoError(t, r.Set(ctx, "a", []byte{1}))
		require.NoError(t, r.Set(ctx, "b", []byte{2}))
		require.NoError(t, r.Clear(ctx))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
	})
}

func TestJSONHelpers(t *testing.T) {
	backends(t, func(t *testing.T, r Repository) {
		ctx := context.Background()

		_, found, err := GetJSON[[]int](ctx, r, "nums")
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, SetJSON(ctx, r, "nums", []int{3, 1, 2}))

		got, found, err := GetJSON[[]int](ctx, r, "nums")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []int{3, 1, 2}, got)

		require.NoError(t, r.Set(ctx, "nums", []byte("{broken")))
		_, found, err = GetJSON[[]int](ctx, r, "nums")
		require.Error(t, err)
		assert.True(t, found)
	})
}

func TestSQLite_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list metadata")
}
