package fireworks

import (
	"math"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

// Burst bounds the randomness of one explosion.
type Burst struct {
	MinCount, MaxCount       int
	MinSpeed, MaxSpeed       float64
	MinLifetime, MaxLifetime float64
}

func (b Burst) Validate() error {
	switch {
	case b.MinCount < 1:
		return dynamo.Invalid("fireworks.explosion_particle_range[0]", b.MinCount, "must be >= 1")
	case b.MaxCount < b.MinCount:
		return dynamo.Invalid("fireworks.explosion_particle_range[1]", b.MaxCount, "must be >= min")
	case !positiveRange(b.MinSpeed, b.MaxSpeed):
		return dynamo.Invalid("fireworks.particle_speed", [2]float64{b.MinSpeed, b.MaxSpeed}, "must be positive with min <= max")
	case !positiveRange(b.MinLifetime, b.MaxLifetime):
		return dynamo.Invalid("fireworks.particle_lifetime", [2]float64{b.MinLifetime, b.MaxLifetime}, "must be positive with min <= max")
	}
	return nil
}

// Env is shared by every emitter of a world.
type Env struct {
	Gravity vec.Vec2
	// Drag multiplies spark velocity once per step.
	Drag float64
	// ExplodeProbability is a per-step chance of bursting before the apex.
	ExplodeProbability float64
	Burst              Burst
}

func (e Env) Validate() error {
	if !vec.IsFinite(e.Gravity) {
		return dynamo.Invalid("gravity", e.Gravity, "must be finite")
	}
	if !(e.Drag > 0 && e.Drag <= 1) {
		return dynamo.Invalid("fireworks.particle_drag", e.Drag, "must be in (0,1]")
	}
	if !probability(e.ExplodeProbability) {
		return dynamo.Invalid("fireworks.explode_probability", e.ExplodeProbability, "must be in [0,1]")
	}
	return e.Burst.Validate()
}

func positiveRange(lo, hi float64) bool {
	return lo > 0 && hi >= lo && !math.IsInf(hi, 0)
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}
