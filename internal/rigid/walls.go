package rigid

import (
	"github.com/san-kum/physim/internal/dynamo"
)

// Bounds is the world rectangle [0, Width] x [0, Height].
type Bounds struct {
	Width, Height float64
}

func (bd Bounds) Validate() error {
	if !(bd.Width > 0) {
		return dynamo.Invalid("width", bd.Width, "must be positive")
	}
	if !(bd.Height > 0) {
		return dynamo.Invalid("height", bd.Height, "must be positive")
	}
	return nil
}

// Fits reports whether a disc of radius r can be placed inside.
func (bd Bounds) Fits(r float64) bool {
	return 2*r <= bd.Width && 2*r <= bd.Height
}

// Contains reports whether the disc lies entirely inside.
func (bd Bounds) Contains(b *Body) bool {
	x, y, r := b.Pos.X(), b.Pos.Y(), b.Radius
	return x >= r && x <= bd.Width-r && y >= r && y <= bd.Height-r
}

// Bounce clamps the body inside the bounds and then reflects the velocity
// on each axis where it was moving outward, scaled by the restitution.
// It returns the number of axes reflected.
func (bd Bounds) Bounce(b *Body) int {
	x, y := b.Pos.X(), b.Pos.Y()
	vx, vy := b.Vel.X(), b.Vel.Y()
	r, e := b.Radius, b.Restitution
	hits := 0

	if x < r {
		x = r
		if vx < 0 {
			vx = -vx * e
			hits++
		}
	} else if x > bd.Width-r {
		x = bd.Width - r
		if vx > 0 {
			vx = -vx * e
			hits++
		}
	}

	if y < r {
		y = r
		if vy < 0 {
			vy = -vy * e
			hits++
		}
	} else if y > bd.Height-r {
		y = bd.Height - r
		if vy > 0 {
			vy = -vy * e
			hits++
		}
	}

	b.Pos[0], b.Pos[1] = x, y
	b.Vel[0], b.Vel[1] = vx, vy
	return hits
}

// Clamp only moves the body back inside; velocity is untouched.
func (bd Bounds) Clamp(b *Body) {
	r := b.Radius
	b.Pos[0] = clamp(b.Pos[0], r, bd.Width-r)
	b.Pos[1] = clamp(b.Pos[1], r, bd.Height-r)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
