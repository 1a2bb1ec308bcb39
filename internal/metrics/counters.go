package metrics

// Collisions totals pair impulses over the run.
type Collisions struct {
	total int
}

func NewCollisions() *Collisions { return &Collisions{} }

func (c *Collisions) Name() string     { return "collisions" }
func (c *Collisions) Observe(s Source) { c.total += s.Collisions() }
func (c *Collisions) Value() float64   { return float64(c.total) }
func (c *Collisions) Reset()           { c.total = 0 }

// ParticlePeak is the largest number of live sparks seen at once.
type ParticlePeak struct {
	peak int
}

func NewParticlePeak() *ParticlePeak { return &ParticlePeak{} }

func (p *ParticlePeak) Name() string { return "particle_peak" }

func (p *ParticlePeak) Observe(s Source) {
	if n := s.ParticleCount(); n > p.peak {
		p.peak = n
	}
}

func (p *ParticlePeak) Value() float64 { return float64(p.peak) }
func (p *ParticlePeak) Reset()         { p.peak = 0 }
