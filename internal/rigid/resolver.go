package rigid

import (
	"log/slog"
	"math"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

// Resolver applies one pass of pairwise impulses in ascending index order.
// Simultaneous contacts are handled sequentially and never iterated to
// convergence within a step.
type Resolver struct {
	logger *slog.Logger
	nudges int
}

func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Nudges counts coincident pairs separated along +X since creation.
func (r *Resolver) Nudges() int { return r.nudges }

// Resolve handles every overlapping pair (i < j) and returns the number of
// impulses applied.
func (r *Resolver) Resolve(bodies []*Body) int {
	impulses := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			hit, err := ResolvePair(bodies[i], bodies[j])
			if err != nil {
				r.nudges++
				r.logger.Debug("coincident bodies nudged", "i", i, "j", j, "err", err)
			}
			if hit {
				impulses++
			}
		}
	}
	return impulses
}

// Normal returns the unit vector from a to b and their center distance.
// Coincident centers yield +X together with ErrCoincident.
func Normal(a, b *Body) (vec.Vec2, float64, error) {
	d := vec.Distance(a.Pos, b.Pos)
	if d == 0 {
		return vec.UnitX, 0, dynamo.ErrCoincident
	}
	return b.Pos.Sub(a.Pos).Mul(1 / d), d, nil
}

// ResolvePair separates an overlapping pair by half the overlap each and,
// unless they are already moving apart, exchanges normal momentum with
// restitution min(a, b). Tangential velocity is untouched.
// The returned error is informational: ErrCoincident means the pair was
// resolved along +X.
func ResolvePair(a, b *Body) (bool, error) {
	n, d, err := Normal(a, b)
	overlap := a.Radius + b.Radius - d
	if overlap <= 0 {
		return false, nil
	}

	hit := false
	if b.Vel.Sub(a.Vel).Dot(n) < 0 {
		applyImpulse(a, b, n)
		hit = true
	}

	half := n.Mul(overlap / 2)
	a.Pos = a.Pos.Sub(half)
	b.Pos = b.Pos.Add(half)
	return hit, err
}

func applyImpulse(a, b *Body, n vec.Vec2) {
	ma, mb := a.Mass, b.Mass
	e := math.Min(a.Restitution, b.Restitution)

	va := a.Vel.Dot(n)
	vb := b.Vel.Dot(n)

	va2 := (ma*va + mb*vb + mb*e*(vb-va)) / (ma + mb)
	vb2 := (ma*va + mb*vb + ma*e*(va-vb)) / (ma + mb)

	a.Vel = a.Vel.Add(n.Mul(va2 - va))
	b.Vel = b.Vel.Add(n.Mul(vb2 - vb))
}
