package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.81
)

// DoublePendulum is a planar double pendulum of point masses in canonical
// (Hamiltonian) form.
// State: [theta1, theta2, p1, p2], angles measured from the downward vertical.
type DoublePendulum struct {
	M1, M2  float64
	L1, L2  float64
	Gravity float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
		Gravity: DefaultGravity,
	}
}

func (d *DoublePendulum) Validate() error {
	switch {
	case !(d.M1 > 0):
		return dynamo.Invalid("pendulum.masses[0]", d.M1, "must be positive")
	case !(d.M2 > 0):
		return dynamo.Invalid("pendulum.masses[1]", d.M2, "must be positive")
	case !(d.L1 > 0):
		return dynamo.Invalid("pendulum.lengths[0]", d.L1, "must be positive")
	case !(d.L2 > 0):
		return dynamo.Invalid("pendulum.lengths[1]", d.L2, "must be positive")
	case d.Gravity < 0 || math.IsNaN(d.Gravity):
		return dynamo.Invalid("pendulum.gravity", d.Gravity, "must be non-negative")
	}
	return nil
}

func (d *DoublePendulum) StateDim() int { return 4 }

// StateAt returns the state at rest with the given angles.
func (d *DoublePendulum) StateAt(theta1, theta2 float64) dynamo.State {
	return dynamo.State{theta1, theta2, 0, 0}
}

func (d *DoublePendulum) Derive(x dynamo.State, t float64) dynamo.State {
	theta1, theta2, p1, p2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	delta := theta1 - theta2
	sinD, cosD := math.Sincos(delta)
	den := m1 + m2*sinD*sinD

	dTheta1 := (l2*p1 - l1*p2*cosD) / (l1 * l1 * l2 * den)
	dTheta2 := (l1*(m1+m2)*p2 - l2*m2*p1*cosD) / (l1 * l2 * l2 * m2 * den)

	c1 := p1 * p2 * sinD / (l1 * l2 * den)
	c2 := (l2*l2*m2*p1*p1 + l1*l1*(m1+m2)*p2*p2 - 2*l1*l2*m2*p1*p2*cosD) *
		math.Sin(2*delta) / (2 * l1 * l1 * l2 * l2 * den * den)

	dP1 := -(m1+m2)*g*l1*math.Sin(theta1) - c1 + c2
	dP2 := -m2*g*l2*math.Sin(theta2) + c1 - c2

	return dynamo.State{dTheta1, dTheta2, dP1, dP2}
}

// AngularVelocities maps canonical momenta back to (omega1, omega2).
func (d *DoublePendulum) AngularVelocities(x dynamo.State) (omega1, omega2 float64) {
	dx := d.Derive(x, 0)
	return dx[0], dx[1]
}

// Energy is the Hamiltonian, with potential zero at the pivot height.
func (d *DoublePendulum) Energy(x dynamo.State) float64 {
	theta1, theta2, p1, p2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	delta := theta1 - theta2
	sinD, cosD := math.Sincos(delta)

	ke := (m2*l2*l2*p1*p1 + (m1+m2)*l1*l1*p2*p2 - 2*m2*l1*l2*p1*p2*cosD) /
		(2 * m2 * l1 * l1 * l2 * l2 * (m1 + m2*sinD*sinD))
	pe := -(m1+m2)*g*l1*math.Cos(theta1) - m2*g*l2*math.Cos(theta2)

	return ke + pe
}

// Positions returns both bob positions relative to the pivot in screen
// orientation (+y points down, so a hanging pendulum has positive y).
func (d *DoublePendulum) Positions(x dynamo.State) (bob1, bob2 vec.Vec2) {
	s1, c1 := math.Sincos(x[0])
	s2, c2 := math.Sincos(x[1])
	bob1 = vec.New(d.L1*s1, d.L1*c1)
	bob2 = bob1.Add(vec.New(d.L2*s2, d.L2*c2))
	return bob1, bob2
}

// AngleFromPointer converts a pointer offset from the pivot (screen
// orientation) into the angle a bob at that point would have.
func AngleFromPointer(dx, dy float64) float64 {
	return math.Atan2(dx, dy)
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"m1":      d.M1,
		"m2":      d.M2,
		"l1":      d.L1,
		"l2":      d.L2,
		"gravity": d.Gravity,
	}
}

func (d *DoublePendulum) SetParam(name string, value float64) error {
	switch name {
	case "m1":
		d.M1 = value
	case "m2":
		d.M2 = value
	case "l1":
		d.L1 = value
	case "l2":
		d.L2 = value
	case "gravity":
		d.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return d.Validate()
}
