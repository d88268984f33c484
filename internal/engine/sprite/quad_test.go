package sprite

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/spritebatch/pkg/math"
)

func TestTransformUnrotated(t *testing.T) {
	tests := []struct {
		name string
		pos  math.Vec2
		ext  math.Vec2
	}{
		{"origin", math.Vec2{X: 0, Y: 0}, math.Vec2{X: 2, Y: 2}},
		{"offset", math.Vec2{X: 30, Y: 30}, math.Vec2{X: 64, Y: 48}},
		{"negative", math.Vec2{X: 70, Y: -50}, math.Vec2{X: 10, Y: 300}},
		{"fractional", math.Vec2{X: -12.25, Y: 7.5}, math.Vec2{X: 0.5, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Instance{Position: tt.pos, HalfExtents: tt.ext, Rotation: math.NoRotation, UV: FullUV}
			v := Transform(s)

			hw, hh := tt.ext.X/2, tt.ext.Y/2
			want := map[int]math.Vec2{
				TopLeft:     {X: tt.pos.X - hw, Y: tt.pos.Y + hh},
				TopRight:    {X: tt.pos.X + hw, Y: tt.pos.Y + hh},
				BottomRight: {X: tt.pos.X + hw, Y: tt.pos.Y - hh},
				BottomLeft:  {X: tt.pos.X - hw, Y: tt.pos.Y - hh},
			}

			for i, corner := range TriangleOrder {
				got := math.Vec2{X: v[i].X, Y: v[i].Y}
				if got != want[corner] {
					t.Errorf("vertex %d = %v, want %v", i, got, want[corner])
				}
			}
		})
	}
}

func TestTransformFullUV(t *testing.T) {
	v := Transform(Instance{HalfExtents: math.Vec2{X: 1, Y: 1}, Rotation: math.NoRotation, UV: FullUV})

	want := [VerticesPerSprite][2]float32{
		{0, 1}, // top-left
		{0, 0}, // bottom-left
		{1, 1}, // top-right
		{1, 1}, // top-right
		{0, 0}, // bottom-left
		{1, 0}, // bottom-right
	}
	for i := range v {
		if v[i].U != want[i][0] || v[i].V != want[i][1] {
			t.Errorf("vertex %d uv = (%v, %v), want (%v, %v)", i, v[i].U, v[i].V, want[i][0], want[i][1])
		}
	}
}

func TestTransformSubRect(t *testing.T) {
	uv := UVRect{MinU: 0.25, MinV: 0.5, MaxU: 0.375, MaxV: 0.75}
	v := Transform(Instance{HalfExtents: math.Vec2{X: 1, Y: 1}, Rotation: math.NoRotation, UV: uv})

	if v[0].U != uv.MinU || v[0].V != uv.MaxV {
		t.Errorf("top-left uv = (%v, %v), want (%v, %v)", v[0].U, v[0].V, uv.MinU, uv.MaxV)
	}
	if v[5].U != uv.MaxU || v[5].V != uv.MinV {
		t.Errorf("bottom-right uv = (%v, %v), want (%v, %v)", v[5].U, v[5].V, uv.MaxU, uv.MinV)
	}
}

// Every quad, whatever its transform, must repeat the shared corners in the
// same slots and keep a consistent signed area for both triangles.
func TestTransformWinding(t *testing.T) {
	angles := []float32{0, 0.3, stdmath.Pi / 4, -stdmath.Pi / 4, stdmath.Pi, 2.5}
	positions := []math.Vec2{{X: 0, Y: 0}, {X: 80, Y: 30}, {X: -250, Y: -200}}
	extents := []math.Vec2{{X: 1, Y: 1}, {X: 64, Y: 32}, {X: 3, Y: 90}}

	for _, a := range angles {
		for _, p := range positions {
			for _, e := range extents {
				s := Instance{Position: p, HalfExtents: e, Rotation: math.RotationFromAngle(a), UV: FullUV}
				v := Transform(s)

				if v[2] != v[3] {
					t.Fatalf("angle %v: vertex 2 and 3 must both be top-right", a)
				}
				if v[1] != v[4] {
					t.Fatalf("angle %v: vertex 1 and 4 must both be bottom-left", a)
				}

				a1 := signedArea(v[0], v[1], v[2])
				a2 := signedArea(v[3], v[4], v[5])
				if a1 <= 0 || a2 <= 0 {
					t.Errorf("angle %v pos %v ext %v: areas (%v, %v), want both counter-clockwise", a, p, e, a1, a2)
				}
			}
		}
	}
}

func TestTransformRotated(t *testing.T) {
	// A quarter turn moves the top-left corner (-0.5, 0.5) to (-0.5, -0.5).
	s := Instance{
		Position:    math.Vec2{X: 10, Y: 20},
		HalfExtents: math.Vec2{X: 4, Y: 2},
		Rotation:    math.RotationFromAngle(stdmath.Pi / 2),
		UV:          FullUV,
	}
	v := Transform(s)

	wantX, wantY := float32(10-1), float32(20-2)
	if !near(v[0].X, wantX) || !near(v[0].Y, wantY) {
		t.Errorf("rotated top-left = (%v, %v), want (%v, %v)", v[0].X, v[0].Y, wantX, wantY)
	}
}

func TestTransformIntoMatchesTransform(t *testing.T) {
	s := New(3, 16, 24, 80, 30, 1, stdmath.Pi/4, 0)
	dst := make([]Vertex, 8)
	TransformInto(dst[1:], s)

	want := Transform(s)
	for i := range want {
		if dst[i+1] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, dst[i+1], want[i])
		}
	}
	if dst[0] != (Vertex{}) || dst[7] != (Vertex{}) {
		t.Error("TransformInto wrote outside its six-vertex window")
	}
}

func TestTransformIntoShortPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for destination shorter than six vertices")
		}
	}()
	TransformInto(make([]Vertex, 5), Instance{})
}

func TestNew(t *testing.T) {
	s := New(7, 32, 16, 5, 6, 1.5, 0, 3)

	if s.Texture != 7 {
		t.Errorf("Texture = %d, want 7", s.Texture)
	}
	if s.HalfExtents != (math.Vec2{X: 96, Y: 48}) {
		t.Errorf("HalfExtents = %v, want (96, 48)", s.HalfExtents)
	}
	if s.Rotation != math.NoRotation {
		t.Errorf("Rotation = %v, want identity", s.Rotation)
	}
	if s.UV != FullUV {
		t.Errorf("UV = %v, want full rect", s.UV)
	}
	if s.Depth != 3 {
		t.Errorf("Depth = %d, want 3", s.Depth)
	}
}

func signedArea(a, b, c Vertex) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}
