// Package sprite turns sprite instances into textured world-space quads.
package sprite

import (
	"github.com/Faultbox/spritebatch/pkg/math"
)

// TextureID is an opaque GPU texture handle. Its lifetime is owned by
// whoever created the texture, never by this package.
type TextureID uint64

// UVRect is a normalized sub-rectangle of a texture.
type UVRect struct {
	MinU, MinV float32
	MaxU, MaxV float32
}

// FullUV covers the whole texture.
var FullUV = UVRect{MinU: 0, MinV: 0, MaxU: 1, MaxV: 1}

// Instance is one sprite to draw this frame.
type Instance struct {
	Texture  TextureID
	Position math.Vec2

	// HalfExtents scales the unit quad. Despite the name these are full
	// scale factors: a sprite built with New covers twice its image size.
	HalfExtents math.Vec2

	Rotation math.Rotation
	UV       UVRect

	// Depth is the caller's draw-order key. Instances are drawn in the
	// order they are submitted; Depth is carried, not sorted on.
	Depth int
}

// Vertex is a single sprite vertex (position + texcoord).
type Vertex struct {
	X, Y float32
	U, V float32
}

// VerticesPerSprite is the vertex count of one quad (two triangles).
const VerticesPerSprite = 6

// VertexStride is the size of a Vertex in bytes.
const VertexStride = 4 * 4

// New builds an instance from an image size, user scale and angle.
// The quad scale is imageSize * 2 * scale, which is the asset convention
// the demo content is authored against.
func New(tex TextureID, imageW, imageH int, x, y, scale, angle float32, depth int) Instance {
	return Instance{
		Texture:  tex,
		Position: math.Vec2{X: x, Y: y},
		HalfExtents: math.Vec2{
			X: float32(imageW) * 2 * scale,
			Y: float32(imageH) * 2 * scale,
		},
		Rotation: math.RotationFromAngle(angle),
		UV:       FullUV,
		Depth:    depth,
	}
}
