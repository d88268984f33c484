package sprite

import (
	"github.com/Faultbox/spritebatch/pkg/math"
)

// Corner indices into the unit quad.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// unitQuad is the local-space quad centered on the origin.
var unitQuad = [4]math.Vec2{
	TopLeft:     {X: -0.5, Y: 0.5},
	TopRight:    {X: 0.5, Y: 0.5},
	BottomRight: {X: 0.5, Y: -0.5},
	BottomLeft:  {X: -0.5, Y: -0.5},
}

// TriangleOrder lists the corner emitted for each of the six vertices:
// (TL, BL, TR) then (TR, BL, BR). Renderers rely on this winding.
var TriangleOrder = [VerticesPerSprite]int{
	TopLeft, BottomLeft, TopRight,
	TopRight, BottomLeft, BottomRight,
}

// Corners returns the four world-space corners of s, indexed by
// TopLeft, TopRight, BottomRight and BottomLeft.
func Corners(s Instance) [4]math.Vec2 {
	var out [4]math.Vec2
	for i, c := range unitQuad {
		p := s.Rotation.Apply(c.Mul(s.HalfExtents))
		out[i] = p.Add(s.Position)
	}
	return out
}

// Transform returns the six vertices of s.
func Transform(s Instance) [VerticesPerSprite]Vertex {
	var out [VerticesPerSprite]Vertex
	TransformInto(out[:], s)
	return out
}

// TransformInto writes the six vertices of s to dst[0:6].
// It panics if dst holds fewer than six vertices.
func TransformInto(dst []Vertex, s Instance) {
	_ = dst[VerticesPerSprite-1]

	q := Corners(s)
	uv := s.UV

	// V runs downward in texture storage, so the visual top maps to MaxV.
	dst[0] = Vertex{X: q[TopLeft].X, Y: q[TopLeft].Y, U: uv.MinU, V: uv.MaxV}
	dst[1] = Vertex{X: q[BottomLeft].X, Y: q[BottomLeft].Y, U: uv.MinU, V: uv.MinV}
	dst[2] = Vertex{X: q[TopRight].X, Y: q[TopRight].Y, U: uv.MaxU, V: uv.MaxV}
	dst[3] = Vertex{X: q[TopRight].X, Y: q[TopRight].Y, U: uv.MaxU, V: uv.MaxV}
	dst[4] = Vertex{X: q[BottomLeft].X, Y: q[BottomLeft].Y, U: uv.MinU, V: uv.MinV}
	dst[5] = Vertex{X: q[BottomRight].X, Y: q[BottomRight].Y, U: uv.MaxU, V: uv.MinV}
}
