package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_RoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	value := []byte(`[{"id":1,"title":"A","price":"9.99","quantity":2,"image":"x"}]`)
	require.NoError(t, backend.Set(ctx, "cart", value))

	got, err := backend.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestFileBackend_MissingKey(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	_, err = backend.Get(context.Background(), "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileBackend_OverwriteKeepsLatest(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "orders", []byte("[1]")))
	require.NoError(t, backend.Set(ctx, "orders", []byte("[1,2]")))

	got, err := backend.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []byte("[1,2]"), got)
}

func TestFileBackend_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, backend.Set(context.Background(), "wishlist", []byte("[]")))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = os.Stat(filepath.Join(dir, "wishlist.json"))
	assert.NoError(t, err)
}

func TestMemoryBackend_RoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	_, err := backend.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Set(ctx, "cart", []byte("[]")))
	got, err := backend.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), got)
}

func TestMemoryBackend_CopiesValues(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, backend.Set(ctx, "cart", value))
	value[0] = 'z'

	got, err := backend.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'z'
	again, err := backend.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
