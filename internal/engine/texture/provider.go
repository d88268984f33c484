// Package texture loads sprite images and turns them into GPU textures.
//
// Texture handles are opaque uint64 values. The sprite pipeline only ever
// carries them; creating and destroying them is the Provider's job.
package texture

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/spritebatch/internal/logger"
)

// PixelSource returns RGBA8 pixels for an image id.
type PixelSource interface {
	Pixels(imageID uint64) (pix []byte, width, height int, err error)
}

// Provider is the texture capability handed to an atlas manager:
// it can fetch image pixels and create or destroy textures from them.
type Provider interface {
	PixelSource
	CreateTexture(pix []byte, width, height int) (uint64, error)
	DestroyTexture(handle uint64)
}

// UploadAll creates one texture per image id and returns image id to
// texture handle. If any upload fails, textures already created are
// destroyed before the error is returned.
func UploadAll(p Provider, ids []uint64) (map[uint64]uint64, error) {
	handles := make(map[uint64]uint64, len(ids))
	for _, id := range ids {
		pix, w, h, err := p.Pixels(id)
		if err != nil {
			Release(p, handles)
			return nil, fmt.Errorf("image %d: %w", id, err)
		}
		handle, err := p.CreateTexture(pix, w, h)
		if err != nil {
			Release(p, handles)
			return nil, fmt.Errorf("image %d: create texture: %w", id, err)
		}
		handles[id] = handle
		logger.Debug("texture created",
			zap.Uint64("image", id),
			zap.Uint64("texture", handle),
			zap.Int("width", w),
			zap.Int("height", h),
		)
	}
	return handles, nil
}

// Release destroys every texture in handles and empties the map.
func Release(p Provider, handles map[uint64]uint64) {
	for id, handle := range handles {
		p.DestroyTexture(handle)
		delete(handles, id)
	}
}
