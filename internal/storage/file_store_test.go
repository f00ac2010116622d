package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStore_Exists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lot.png"), []byte("png"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder"), 0o700))

	store := NewLocalFileStore(dir)
	ctx := context.Background()

	t.Run("Present", func(t *testing.T) {
		ok, err := store.Exists(ctx, "lot.png")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Missing", func(t *testing.T) {
		ok, err := store.Exists(ctx, "gone.png")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Directory is not a file", func(t *testing.T) {
		ok, err := store.Exists(ctx, "folder")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Path traversal", func(t *testing.T) {
		ok, err := store.Exists(ctx, "../"+filepath.Base(dir)+"/lot.png")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Exists(cancelled, "lot.png")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
