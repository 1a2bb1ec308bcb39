package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a parameter rejected at construction time.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrInvalidStep indicates a non-positive or non-finite time step.
	ErrInvalidStep = errors.New("dynamo: time step must be positive and finite")

	// ErrCoincident indicates two bodies with identical centers. The collision
	// resolver recovers from it internally.
	ErrCoincident = errors.New("dynamo: coincident body centers")

	// ErrAlreadyExploded indicates an explode request on an exploded emitter.
	ErrAlreadyExploded = errors.New("dynamo: emitter already exploded")

	// ErrNoOscillator indicates a pendulum command sent to a world without one.
	ErrNoOscillator = errors.New("dynamo: world has no oscillator")

	// ErrOutOfBounds indicates a coordinate outside the world bounds.
	ErrOutOfBounds = errors.New("dynamo: coordinate outside world bounds")

	// ErrUnknownCommand indicates an unrecognized command kind.
	ErrUnknownCommand = errors.New("dynamo: unknown command")
)

// ConfigError reports which parameter was rejected and why.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dynamo: invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Invalid is shorthand for building a *ConfigError.
func Invalid(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
