package rigid

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

// SpawnParams describes the random population placed at setup.
type SpawnParams struct {
	Count       int
	MinRadius   float64
	MaxRadius   float64
	MaxSpeed    float64
	Density     float64
	Restitution float64
}

func (p SpawnParams) Validate(bd Bounds) error {
	switch {
	case p.Count < 0:
		return dynamo.Invalid("ball_count", p.Count, "must be non-negative")
	case !(p.MinRadius > 0):
		return dynamo.Invalid("balls.min_radius", p.MinRadius, "must be positive")
	case p.MaxRadius < p.MinRadius:
		return dynamo.Invalid("balls.max_radius", p.MaxRadius, "must be >= min_radius")
	case !bd.Fits(p.MaxRadius):
		return dynamo.Invalid("balls.max_radius", p.MaxRadius, "does not fit inside the world")
	case p.MaxSpeed < 0 || math.IsNaN(p.MaxSpeed):
		return dynamo.Invalid("balls.max_speed", p.MaxSpeed, "must be non-negative")
	case !(p.Density > 0):
		return dynamo.Invalid("balls.density", p.Density, "must be positive")
	case !(p.Restitution >= 0 && p.Restitution <= 1):
		return dynamo.Invalid("wall_restitution", p.Restitution, "must be in [0,1]")
	}
	return nil
}

const placementAttempts = 64

// Spawn creates p.Count bodies inside bd. Each body gets mass density*r^2.
// Placement retries to avoid overlaps and gives up after a fixed number of
// attempts, accepting the last candidate.
func Spawn(rng *rand.Rand, p SpawnParams, bd Bounds) ([]*Body, error) {
	if err := p.Validate(bd); err != nil {
		return nil, err
	}
	bodies := make([]*Body, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		r := p.MinRadius + rng.Float64()*(p.MaxRadius-p.MinRadius)

		var pos vec.Vec2
		for attempt := 0; attempt < placementAttempts; attempt++ {
			pos = vec.New(
				r+rng.Float64()*(bd.Width-2*r),
				r+rng.Float64()*(bd.Height-2*r),
			)
			if free(pos, r, bodies) {
				break
			}
		}

		vel := vec.New(
			(rng.Float64()*2-1)*p.MaxSpeed,
			(rng.Float64()*2-1)*p.MaxSpeed,
		)
		b, err := NewBody(pos, vel, r, p.Density*r*r, p.Restitution, RandomColor(rng))
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func free(pos vec.Vec2, r float64, bodies []*Body) bool {
	for _, b := range bodies {
		if vec.Distance(pos, b.Pos) < r+b.Radius {
			return false
		}
	}
	return true
}

// RandomColor picks a bright opaque color.
func RandomColor(rng *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(50 + rng.Intn(206)),
		G: uint8(50 + rng.Intn(206)),
		B: uint8(50 + rng.Intn(206)),
		A: 255,
	}
}
