package metrics

import "github.com/san-kum/physim/internal/vec"

// Source is the read side of a world sampled once per step.
type Source interface {
	Time() float64
	KineticEnergy() float64
	Momentum() vec.Vec2
	Collisions() int
	ParticleCount() int
	PendulumEnergy() float64
}

type Metric interface {
	Name() string
	Observe(s Source)
	Value() float64
	Reset()
}

// Defaults returns a fresh instance of every metric.
func Defaults() []Metric {
	return []Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewCollisions(),
		NewParticlePeak(),
		NewStability(),
	}
}
