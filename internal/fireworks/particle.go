package fireworks

import (
	"image/color"
	"math"

	"github.com/san-kum/physim/internal/vec"
)

type Particle struct {
	Pos      vec.Vec2
	Vel      vec.Vec2
	Color    color.RGBA
	Age      float64
	Lifetime float64
}

// Step applies gravity, drag, motion and ageing, in that order.
func (p *Particle) Step(g vec.Vec2, drag, dt float64) {
	p.Vel = p.Vel.Add(g.Mul(dt))
	if drag != 1 {
		p.Vel = p.Vel.Mul(drag)
	}
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))
	p.Age += dt
}

func (p *Particle) Alive() bool { return p.Age < p.Lifetime }

// Fade is 1 - age/lifetime floored at zero.
func (p *Particle) Fade() float64 {
	return math.Max(0, 1-p.Age/p.Lifetime)
}

// Alpha is the fade scaled to a byte.
func (p *Particle) Alpha() uint8 {
	return uint8(255 * p.Fade())
}

// stepAll advances every particle and drops the expired ones, keeping the
// survivors in their original order. The backing array is reused.
func stepAll(ps []Particle, g vec.Vec2, drag, dt float64) []Particle {
	live := ps[:0]
	for i := range ps {
		ps[i].Step(g, drag, dt)
		if ps[i].Alive() {
			live = append(live, ps[i])
		}
	}
	clear(ps[len(live):])
	return live
}
