package metrics

import (
	"math"
)

// Stability is the fraction of samples whose pendulum energy is finite.
// A chaotic run may grow without bound; this only flags NaN and Inf.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{
		name: "stability",
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(src Source) {
	s.samples++
	e := src.PendulumEnergy()
	if math.IsNaN(e) || math.IsInf(e, 0) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
