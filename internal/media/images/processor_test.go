package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestProcessor(t *testing.T) *Processor {
	t.Helper()
	storage := setupTestStorage(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewProcessor(storage, logger)
}

// makeTestImage renders a small gradient so BlurHash has something to chew on.
func makeTestImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessor_Process(t *testing.T) {
	t.Run("stores valid PNG upload", func(t *testing.T) {
		p := setupTestProcessor(t)

		filename, blurHash, err := p.Process("rec-001", encodePNG(t, makeTestImage(32, 24)))
		require.NoError(t, err)
		assert.Equal(t, "rec-001.png", filename)
		assert.NotEmpty(t, blurHash)
		assert.True(t, p.storage.Exists("rec-001.png"))
	})

	t.Run("stores valid JPEG upload with jpg extension", func(t *testing.T) {
		p := setupTestProcessor(t)

		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, makeTestImage(32, 24), nil))

		filename, _, err := p.Process("rec-002", buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "rec-002.jpg", filename)
	})

	t.Run("rejects non-image data", func(t *testing.T) {
		p := setupTestProcessor(t)

		_, _, err := p.Process("rec-003", []byte("definitely not pixels"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAnImage)
		assert.False(t, p.storage.Exists("rec-003.jpg"))
	})

	t.Run("rejects empty body", func(t *testing.T) {
		p := setupTestProcessor(t)

		_, _, err := p.Process("rec-004", nil)
		assert.ErrorIs(t, err, ErrNotAnImage)
	})

	t.Run("replaces previous upload in another format", func(t *testing.T) {
		p := setupTestProcessor(t)

		_, _, err := p.Process("rec-005", encodePNG(t, makeTestImage(16, 16)))
		require.NoError(t, err)
		require.True(t, p.storage.Exists("rec-005.png"))

		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, makeTestImage(16, 16), nil))
		filename, _, err := p.Process("rec-005", buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "rec-005.jpg", filename)
		assert.False(t, p.storage.Exists("rec-005.png"), "stale png should be removed")
	})
}

func TestComputeBlurHash(t *testing.T) {
	t.Run("small image", func(t *testing.T) {
		hash, err := ComputeBlurHash(makeTestImage(20, 20))
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("large image gets downscaled", func(t *testing.T) {
		hash, err := ComputeBlurHash(makeTestImage(640, 480))
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})
}
