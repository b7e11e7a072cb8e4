package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}

func TestNewStorage(t *testing.T) {
	t.Run("creates storage with valid path", func(t *testing.T) {
		tmpDir := t.TempDir()

		storage, err := NewStorage(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, storage)

		// Verify recipes directory was created.
		info, err := os.Stat(filepath.Join(tmpDir, "recipes"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("returns error for empty path", func(t *testing.T) {
		storage, err := NewStorage("")
		assert.Error(t, err)
		assert.Nil(t, storage)
		assert.Contains(t, err.Error(), "base path cannot be empty")
	})

	t.Run("creates nested directories if needed", func(t *testing.T) {
		tmpDir := t.TempDir()
		nestedPath := filepath.Join(tmpDir, "nested", "path")

		storage, err := NewStorage(nestedPath)
		require.NoError(t, err)
		require.NotNil(t, storage)
	})
}

func TestStorage_SaveAndGet(t *testing.T) {
	t.Run("round trips image data", func(t *testing.T) {
		storage := setupTestStorage(t)
		testData := []byte("test image data")

		err := storage.Save("rec-123.jpg", testData)
		require.NoError(t, err)

		data, err := storage.Get("rec-123.jpg")
		require.NoError(t, err)
		assert.Equal(t, testData, data)
		assert.True(t, storage.Exists("rec-123.jpg"))
	})

	t.Run("returns error for empty filename", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Save("", []byte("x"))
		assert.Error(t, err)
	})

	t.Run("returns error for empty image data", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Save("rec-123.jpg", []byte{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "image data cannot be empty")
	})

	t.Run("rejects path traversal in filename", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Save("../escape.jpg", []byte("x"))
		assert.Error(t, err)

		_, err = storage.Get("../../etc/passwd")
		assert.Error(t, err)
		assert.False(t, storage.Exists("../escape.jpg"))
	})

	t.Run("get missing image errors", func(t *testing.T) {
		storage := setupTestStorage(t)

		_, err := storage.Get("rec-nope.jpg")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestStorage_Delete(t *testing.T) {
	storage := setupTestStorage(t)

	require.NoError(t, storage.Save("rec-del.png", []byte("pixels")))
	require.NoError(t, storage.Delete("rec-del.png"))
	assert.False(t, storage.Exists("rec-del.png"))

	// Deleting again is a no-op.
	assert.NoError(t, storage.Delete("rec-del.png"))
}

func TestStorage_Hash(t *testing.T) {
	storage := setupTestStorage(t)

	require.NoError(t, storage.Save("rec-hash.jpg", []byte("stable bytes")))

	h1, err := storage.Hash("rec-hash.jpg")
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, err := storage.Hash("rec-hash.jpg")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}
