package physics

import (
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

// Oscillator advances a DoublePendulum with a fixed internal increment.
// A frame step is subdivided through an accumulator so the trajectory
// depends only on the increment, never on the frame rate.
type Oscillator struct {
	sys   *DoublePendulum
	integ dynamo.Integrator
	h     float64

	state dynamo.State
	t     float64
	acc   float64

	theta1, theta2 float64
	trace          *Trace
}

func NewOscillator(sys *DoublePendulum, integ dynamo.Integrator, h float64, traceLen int) (*Oscillator, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	if err := dynamo.CheckStep(h); err != nil {
		return nil, dynamo.Invalid("pendulum.dt", h, "must be a finite positive number")
	}
	if traceLen < 1 {
		return nil, dynamo.Invalid("pendulum.trace_length", traceLen, "must be positive")
	}
	o := &Oscillator{
		sys:   sys,
		integ: integ,
		h:     h,
		trace: NewTrace(traceLen),
	}
	o.Reset(0, 0)
	return o, nil
}

func (o *Oscillator) System() *DoublePendulum { return o.sys }
func (o *Oscillator) Increment() float64      { return o.h }
func (o *Oscillator) Time() float64           { return o.t }

// State returns a copy of [theta1, theta2, p1, p2].
func (o *Oscillator) State() dynamo.State { return o.state.Clone() }

// Reset places both arms at the given angles with zero momentum and
// discards all history.
func (o *Oscillator) Reset(theta1, theta2 float64) {
	o.theta1, o.theta2 = theta1, theta2
	o.state = o.sys.StateAt(theta1, theta2)
	o.t = 0
	o.acc = 0
	o.trace.Clear()
}

// SetInitialAngles stores the angles used by later resets and applies them.
func (o *Oscillator) SetInitialAngles(theta1, theta2 float64) {
	o.Reset(theta1, theta2)
}

// InitialAngles returns the angles the next Restart will use.
func (o *Oscillator) InitialAngles() (float64, float64) { return o.theta1, o.theta2 }

// Restart resets to the stored initial angles.
func (o *Oscillator) Restart() { o.Reset(o.theta1, o.theta2) }

// PerturbTheta1 sets theta1 and clears both momenta; theta2 is kept.
func (o *Oscillator) PerturbTheta1(theta1 float64) {
	o.state[0] = theta1
	o.state[2] = 0
	o.state[3] = 0
	o.trace.Clear()
}

// Step advances the oscillator by dt of wall time and appends the outer
// bob to the trace once.
func (o *Oscillator) Step(dt float64) error {
	if err := dynamo.CheckStep(dt); err != nil {
		return err
	}
	o.acc += dt
	for o.acc+1e-12 >= o.h {
		o.state = o.integ.Step(o.sys, o.state, o.t, o.h)
		o.t += o.h
		o.acc -= o.h
	}
	if o.acc < 0 {
		o.acc = 0
	}
	_, bob2 := o.sys.Positions(o.state)
	o.trace.Push(bob2)
	return nil
}

func (o *Oscillator) Energy() float64 { return o.sys.Energy(o.state) }

func (o *Oscillator) AngularVelocities() (float64, float64) {
	return o.sys.AngularVelocities(o.state)
}

// Segments returns pivot-relative bob positions in pendulum units.
func (o *Oscillator) Segments() (bob1, bob2 vec.Vec2) {
	return o.sys.Positions(o.state)
}

func (o *Oscillator) Trace() []vec.Vec2 { return o.trace.Points() }
