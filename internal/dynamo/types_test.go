package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}

	c := a.Clone()
	c[0] = 99
	if a[0] == 99 {
		t.Error("Clone shares backing array")
	}
}

func TestDerivFunc(t *testing.T) {
	var sys System = DerivFunc(func(x State, _ float64) State {
		return State{-x[0]}
	})
	if got := sys.Derive(State{2}, 0); got[0] != -2 {
		t.Errorf("Derive = %v, want [-2]", got)
	}
}

func TestCheckStep(t *testing.T) {
	for _, dt := range []float64{0, -0.1, math.NaN(), math.Inf(1)} {
		if err := CheckStep(dt); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("CheckStep(%v) = %v, want ErrInvalidStep", dt, err)
		}
	}
	if err := CheckStep(1.0 / 60); err != nil {
		t.Errorf("CheckStep(1/60) = %v", err)
	}
}

func TestConfigError(t *testing.T) {
	err := Invalid("dt", -1.0, "must be positive")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("ConfigError does not unwrap to ErrInvalidConfig")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "dt" {
		t.Errorf("errors.As failed: %v", err)
	}
	expected := "dynamo: invalid dt=-1: must be positive"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrInvalidStep}
	if !errors.Is(err, ErrInvalidStep) {
		t.Error("SimulationError does not unwrap")
	}
	expected := "step 150 (t=1.5000): dynamo: time step must be positive and finite"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
