package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/physim/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"euler":      func() dynamo.Integrator { return NewEuler() },
	"semi_euler": func() dynamo.Integrator { return NewSemiImplicitEuler() },
	"rk4":        func() dynamo.Integrator { return NewRK4() },
	"rk45":       func() dynamo.Integrator { return NewRK45() },
	"verlet":     func() dynamo.Integrator { return NewVerlet() },
	"leapfrog":   func() dynamo.Integrator { return NewLeapfrog() },
}

// New returns a fresh integrator by name.
func New(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// verlet and leapfrog drift positions by the raw second half of the state,
// so they only fit systems whose second half is dq/dt.
var kinematic = map[string]bool{"verlet": true, "leapfrog": true}

// General reports whether the named integrator takes every rate from
// Derive. Canonical-momentum systems need one of these.
func General(name string) bool {
	return Known(name) && !kinematic[name]
}

func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
