package world

import (
	"image/color"

	"github.com/san-kum/physim/internal/fireworks"
	"github.com/san-kum/physim/internal/rigid"
	"github.com/san-kum/physim/internal/vec"
)

type BodyView struct {
	Pos    vec.Vec2
	Vel    vec.Vec2
	Radius float64
	Mass   float64
	Color  color.RGBA
}

type ParticleView struct {
	Pos   vec.Vec2
	Color color.RGBA
	Alpha uint8
}

// PendulumView is in world pixels; Pivot is the fixed top joint.
type PendulumView struct {
	Pivot  vec.Vec2
	Bob1   vec.Vec2
	Bob2   vec.Vec2
	Trace  []vec.Vec2
	Theta1 float64
	Theta2 float64
	Omega1 float64
	Omega2 float64
	Energy float64
}

// Renderer receives one frame from Render.
type Renderer interface {
	Begin(width, height float64)
	Body(b BodyView)
	Particle(p ParticleView)
	Pendulum(p PendulumView)
	End()
}

func (w *World) Bodies() []BodyView {
	out := make([]BodyView, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = BodyView{Pos: b.Pos, Vel: b.Vel, Radius: b.Radius, Mass: b.Mass, Color: b.Color}
	}
	return out
}

// Particles lists live sparks of every exploded emitter.
func (w *World) Particles() []ParticleView {
	var out []ParticleView
	for _, e := range w.emitters {
		for i := range e.Particles() {
			p := &e.Particles()[i]
			out = append(out, ParticleView{Pos: p.Pos, Color: p.Color, Alpha: p.Alpha()})
		}
	}
	return out
}

// Rockets lists emitters still ascending.
func (w *World) Rockets() []ParticleView {
	var out []ParticleView
	for _, e := range w.emitters {
		if e.Phase() == fireworks.Ascending {
			out = append(out, ParticleView{Pos: e.Pos(), Color: e.Color(), Alpha: 255})
		}
	}
	return out
}

func (w *World) Pendulum() (PendulumView, bool) {
	if w.osc == nil {
		return PendulumView{}, false
	}
	scale := w.cfg.Pendulum.Scale
	toScreen := func(p vec.Vec2) vec.Vec2 { return w.pivot.Add(p.Mul(scale)) }

	b1, b2 := w.osc.Segments()
	trace := w.osc.Trace()
	for i := range trace {
		trace[i] = toScreen(trace[i])
	}
	s := w.osc.State()
	o1, o2 := w.osc.AngularVelocities()
	return PendulumView{
		Pivot:  w.pivot,
		Bob1:   toScreen(b1),
		Bob2:   toScreen(b2),
		Trace:  trace,
		Theta1: s[0],
		Theta2: s[1],
		Omega1: o1,
		Omega2: o2,
		Energy: w.osc.Energy(),
	}, true
}

// Render pushes the current frame to r: bodies, sparks, rockets, pendulum.
func (w *World) Render(r Renderer) {
	r.Begin(w.bounds.Width, w.bounds.Height)
	for _, b := range w.Bodies() {
		r.Body(b)
	}
	for _, p := range w.Particles() {
		r.Particle(p)
	}
	for _, p := range w.Rockets() {
		r.Particle(p)
	}
	if p, ok := w.Pendulum(); ok {
		r.Pendulum(p)
	}
	r.End()
}

// Collisions is the number of pair impulses applied in the last step.
func (w *World) Collisions() int { return w.collisions }

// WallHits is the number of wall reflections in the last step.
func (w *World) WallHits() int { return w.wallHits }

func (w *World) KineticEnergy() float64 { return rigid.TotalKinetic(w.bodies) }
func (w *World) Momentum() vec.Vec2     { return rigid.TotalMomentum(w.bodies) }

// PotentialEnergy of the bodies relative to the floor.
func (w *World) PotentialEnergy() float64 {
	return rigid.PotentialEnergy(w.bodies, w.stepper.Env())
}

func (w *World) ParticleCount() int {
	n := 0
	for _, e := range w.emitters {
		n += len(e.Particles())
	}
	return n
}

func (w *World) EmitterCount() int { return len(w.emitters) }
func (w *World) Launches() int     { return w.launches }
func (w *World) Explosions() int   { return w.explosions }

// PendulumEnergy is the oscillator Hamiltonian, or 0 without one.
func (w *World) PendulumEnergy() float64 {
	if w.osc == nil {
		return 0
	}
	return w.osc.Energy()
}
