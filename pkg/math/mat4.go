package math

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Ortho returns an orthographic projection matrix.
// left, right, bottom, top define the view frustum boundaries.
// near and far define the depth range.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// Ortho2D returns a projection showing a width x height world region
// centered on (x, y), with +Y pointing up.
func Ortho2D(width, height, x, y float32) Mat4 {
	hw, hh := width/2, height/2
	return Ortho(x-hw, x+hw, y-hh, y+hh, -1, 1)
}

// Ptr returns a pointer to the first element for OpenGL calls.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
