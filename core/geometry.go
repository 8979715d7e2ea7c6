package core

import (
	"math"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// Vec3 aliases the model vector so controller math reads naturally.
type Vec3 = model.Vec3

// Add returns a + b.
func Add(a, b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Sub returns a - b.
func Sub(a, b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Scale returns v * s.
func Scale(v Vec3, s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Distance returns the straight-line distance between two points.
func Distance(a, b Vec3) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// HorizontalDistance ignores the vertical component.
func HorizontalDistance(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Normalize returns the unit vector in v's direction. A zero-length
// input returns the fixed forward vector (+Z) rather than NaN, so
// downstream heading math never sees a degenerate direction.
func Normalize(v Vec3) Vec3 {
	mag := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if mag == 0 {
		return Vec3{Z: 1}
	}
	inv := 1 / mag
	return Vec3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// BearingTo returns the heading (radians about Y) from a toward b,
// using atan2(dx, dz) so heading 0 faces +Z.
func BearingTo(a, b Vec3) float64 {
	return math.Atan2(b.X-a.X, b.Z-a.Z)
}

// WrapToPi maps any angle into (-π, π].
func WrapToPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// QuadraticBezier evaluates B(t) = (1-t)²·p0 + 2(1-t)t·c + t²·p1.
// Endpoints are exact: t=0 yields p0, t=1 yields p1.
func QuadraticBezier(p0, c, p1 Vec3, t float64) Vec3 {
	u := 1 - t
	a := u * u
	b := 2 * u * t
	d := t * t
	return Vec3{
		X: a*p0.X + b*c.X + d*p1.X,
		Y: a*p0.Y + b*c.Y + d*p1.Y,
		Z: a*p0.Z + b*c.Z + d*p1.Z,
	}
}

// EaseOutCubic shapes a [0,1] blend parameter as 1-(1-t)³.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
