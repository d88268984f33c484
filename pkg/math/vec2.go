// Package math provides math types and functions for 2D sprite rendering.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Mul returns the component-wise product of v and other.
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// Rotation is a 2D rotation stored as its cosine and sine.
// Sprites carry a Rotation instead of an angle so the per-vertex path
// never evaluates trigonometric functions.
type Rotation struct {
	Cos, Sin float32
}

// NoRotation is the identity rotation.
var NoRotation = Rotation{Cos: 1, Sin: 0}

// RotationFromAngle precomputes the rotation for an angle in radians.
func RotationFromAngle(radians float32) Rotation {
	s, c := math.Sincos(float64(radians))
	return Rotation{Cos: float32(c), Sin: float32(s)}
}

// Apply rotates v about the origin.
func (r Rotation) Apply(v Vec2) Vec2 {
	return Vec2{
		X: r.Cos*v.X - r.Sin*v.Y,
		Y: r.Sin*v.X + r.Cos*v.Y,
	}
}
