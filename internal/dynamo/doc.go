// Package dynamo provides core simulation primitives shared by the engine.
//
// The package defines the fundamental interfaces and types for fixed-step
// numerical integration:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [DerivFunc]: adapter turning a plain function into a [System]
//   - [Integrator]: numerical stepper interface
//
// It also carries the engine's error taxonomy ([ErrInvalidConfig],
// [ErrInvalidStep], [ErrCoincident], ...), so every package reports
// failures through the same sentinels.
//
// # Example
//
//	pend := physics.NewDoublePendulum()
//	integ := integrators.NewRK4()
//	x := pend.StateAt(math.Pi/2, math.Pi/2)
//	x = integ.Step(pend, x, 0, 0.002)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// Give each simulation its own instance.
package dynamo
