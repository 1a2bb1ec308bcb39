package rigid

import (
	"image/color"
	"math"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

type Body struct {
	Pos         vec.Vec2
	Vel         vec.Vec2
	Radius      float64
	Mass        float64
	Restitution float64
	Color       color.RGBA
}

// NewBody validates its arguments; invalid values are rejected, not clamped.
func NewBody(pos, vel vec.Vec2, radius, mass, restitution float64, c color.RGBA) (*Body, error) {
	b := &Body{
		Pos:         pos,
		Vel:         vel,
		Radius:      radius,
		Mass:        mass,
		Restitution: restitution,
		Color:       c,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Body) Validate() error {
	switch {
	case !(b.Radius > 0) || math.IsInf(b.Radius, 0):
		return dynamo.Invalid("radius", b.Radius, "must be positive")
	case !(b.Mass > 0) || math.IsInf(b.Mass, 0):
		return dynamo.Invalid("mass", b.Mass, "must be positive")
	case !(b.Restitution >= 0 && b.Restitution <= 1):
		return dynamo.Invalid("restitution", b.Restitution, "must be in [0,1]")
	case !vec.IsFinite(b.Pos):
		return dynamo.Invalid("position", b.Pos, "must be finite")
	case !vec.IsFinite(b.Vel):
		return dynamo.Invalid("velocity", b.Vel, "must be finite")
	}
	return nil
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.Dot(b.Vel)
}

func (b *Body) Momentum() vec.Vec2 {
	return b.Vel.Mul(b.Mass)
}

// Overlaps reports whether the two discs intersect.
func (b *Body) Overlaps(o *Body) bool {
	return vec.Distance(b.Pos, o.Pos) < b.Radius+o.Radius
}

func (b *Body) state() dynamo.State {
	return dynamo.State{b.Pos.X(), b.Pos.Y(), b.Vel.X(), b.Vel.Y()}
}

func (b *Body) setState(x dynamo.State) {
	b.Pos = vec.New(x[0], x[1])
	b.Vel = vec.New(x[2], x[3])
}
