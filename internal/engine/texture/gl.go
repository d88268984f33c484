package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLProvider creates OpenGL textures from a PixelSource.
// All methods must be called on the thread owning the GL context.
type GLProvider struct {
	PixelSource
}

// NewGLProvider wraps src with OpenGL texture creation.
func NewGLProvider(src PixelSource) *GLProvider {
	return &GLProvider{PixelSource: src}
}

// CreateTexture uploads RGBA8 pixels into a new nearest-filtered texture.
func (p *GLProvider) CreateTexture(pix []byte, width, height int) (uint64, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if len(pix) < width*height*4 {
		return 0, fmt.Errorf("texture %dx%d needs %d bytes, got %d", width, height, width*height*4, len(pix))
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return uint64(tex), nil
}

// DestroyTexture deletes a texture created by CreateTexture.
func (p *GLProvider) DestroyTexture(handle uint64) {
	tex := uint32(handle)
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}
