// Package vec provides the 2D vector helpers shared by the simulation packages.
//
// [Vec2] is an alias of mgl64.Vec2, so the usual Add, Sub, Mul, Dot, Len and
// Normalize methods are available directly. The helpers here cover the cases
// mgl64 leaves to the caller: zero-length normals, polar construction and
// per-axis clamping.
package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vec2 = mgl64.Vec2

var (
	Zero  = Vec2{0, 0}
	UnitX = Vec2{1, 0}
	UnitY = Vec2{0, 1}
)

func New(x, y float64) Vec2 { return Vec2{x, y} }

// Distance returns |b - a|.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// UnitOr normalizes v, returning fallback when v has zero length.
// mgl64's Normalize divides by zero in that case.
func UnitOr(v, fallback Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return fallback
	}
	return v.Mul(1 / l)
}

// FromPolar builds a vector of length r at angle rad (measured from +X toward +Y).
func FromPolar(rad, r float64) Vec2 {
	s, c := math.Sincos(rad)
	return Vec2{c * r, s * r}
}

// Clamp limits each component of v to [lo, hi] on the matching axis.
func Clamp(v, lo, hi Vec2) Vec2 {
	return Vec2{
		math.Max(lo[0], math.Min(hi[0], v[0])),
		math.Max(lo[1], math.Min(hi[1], v[1])),
	}
}

// Project splits v into its component along unit vector n and the remainder.
func Project(v, n Vec2) (along float64, tangent Vec2) {
	along = v.Dot(n)
	return along, v.Sub(n.Mul(along))
}

func IsFinite(v Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
