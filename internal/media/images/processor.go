package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log/slog"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrNotAnImage reports that uploaded bytes did not decode as any
// supported image format.
var ErrNotAnImage = fmt.Errorf("data is not a valid image")

// extensions maps registered decoder format names to stored file extensions.
var extensions = map[string]string{
	"jpeg": "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
}

// Processor validates uploaded photos and stores them with a BlurHash
// placeholder.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Storage exposes the underlying image storage.
func (p *Processor) Storage() *Storage {
	return p.storage
}

// Process decodes the uploaded bytes, stores the original under
// {entityID}.{ext}, and returns the stored filename and BlurHash.
// Returns ErrNotAnImage when the data doesn't decode.
func (p *Processor) Process(entityID string, data []byte) (filename, blurHash string, err error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		p.logger.Debug("rejected upload, not a decodable image",
			"entity_id", entityID,
			"size", len(data),
			"error", err,
		)
		return "", "", ErrNotAnImage
	}

	ext, ok := extensions[format]
	if !ok {
		return "", "", ErrNotAnImage
	}

	filename = entityID + "." + ext

	// Replace any previous photo stored under a different extension.
	for _, old := range extensions {
		if old == ext {
			continue
		}
		if err := p.storage.Delete(entityID + "." + old); err != nil {
			p.logger.Warn("failed to remove stale image",
				"entity_id", entityID,
				"error", err,
			)
		}
	}

	if err := p.storage.Save(filename, data); err != nil {
		return "", "", fmt.Errorf("save image: %w", err)
	}

	blurHash, err = ComputeBlurHash(img)
	if err != nil {
		// The photo itself is saved; a missing placeholder is cosmetic.
		p.logger.Warn("failed to compute blurhash",
			"entity_id", entityID,
			"error", err,
		)
		blurHash = ""
	}

	p.logger.Debug("stored image",
		"entity_id", entityID,
		"format", format,
		"size", len(data),
	)

	return filename, blurHash, nil
}
