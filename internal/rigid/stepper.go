package rigid

import (
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

// Env holds the forces and limits shared by every body.
type Env struct {
	Gravity  vec.Vec2
	Friction float64
	Bounds   Bounds
}

func (e Env) Validate() error {
	if err := e.Bounds.Validate(); err != nil {
		return err
	}
	if !(e.Friction > 0 && e.Friction <= 1) {
		return dynamo.Invalid("friction_factor", e.Friction, "must be in (0,1]")
	}
	if !vec.IsFinite(e.Gravity) {
		return dynamo.Invalid("gravity", e.Gravity, "must be finite")
	}
	return nil
}

// freeBody is the ODE of a body under uniform gravity.
// State: [x, y, vx, vy].
type freeBody struct {
	g vec.Vec2
}

func (f freeBody) StateDim() int { return 4 }

func (f freeBody) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[2], x[3], f.g.X(), f.g.Y()}
}

// Stepper advances single bodies: integrate, damp, then bounce.
type Stepper struct {
	env   Env
	integ dynamo.Integrator
	sys   freeBody
}

func NewStepper(env Env, integ dynamo.Integrator) (*Stepper, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &Stepper{env: env, integ: integ, sys: freeBody{g: env.Gravity}}, nil
}

func (s *Stepper) Env() Env { return s.env }

// Step moves b by dt and returns the number of wall reflections.
func (s *Stepper) Step(b *Body, dt float64) int {
	b.setState(s.integ.Step(s.sys, b.state(), 0, dt))
	if s.env.Friction != 1 {
		b.Vel = b.Vel.Mul(s.env.Friction)
	}
	return s.env.Bounds.Bounce(b)
}

// StepAll steps every body in index order.
func (s *Stepper) StepAll(bodies []*Body, dt float64) int {
	hits := 0
	for _, b := range bodies {
		hits += s.Step(b, dt)
	}
	return hits
}

// ClampAll pulls bodies pushed outside by pair separation back in.
func (s *Stepper) ClampAll(bodies []*Body) {
	for _, b := range bodies {
		s.env.Bounds.Clamp(b)
	}
}

// TotalKinetic sums 1/2 m v^2 over bodies.
func TotalKinetic(bodies []*Body) float64 {
	e := 0.0
	for _, b := range bodies {
		e += b.KineticEnergy()
	}
	return e
}

// TotalMomentum sums m v over bodies.
func TotalMomentum(bodies []*Body) vec.Vec2 {
	p := vec.Zero
	for _, b := range bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

// PotentialEnergy is the gravitational energy relative to the floor.
func PotentialEnergy(bodies []*Body, env Env) float64 {
	e := 0.0
	g := env.Gravity.Y()
	for _, b := range bodies {
		e += b.Mass * g * (env.Bounds.Height - b.Pos.Y())
	}
	return e
}
