package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// DerivFunc adapts a plain derivative function to [System].
type DerivFunc func(x State, t float64) State

func (f DerivFunc) Derive(x State, t float64) State { return f(x, t) }

// StateDim is unknown for a bare function; integrators size by len(x).
func (f DerivFunc) StateDim() int { return 0 }

// Hamiltonian systems expose their conserved energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Configurable systems expose named physical parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Integrator advances x by one fixed step. Implementations must be
// deterministic: identical (x, t, dt) yield bit-identical results.
type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Named integrators report their registry name.
type Named interface {
	Name() string
}

// CheckStep rejects dt values the integrators cannot accept.
func CheckStep(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return ErrInvalidStep
	}
	return nil
}
