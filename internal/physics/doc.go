// Package physics provides the chaotic oscillator used by the world.
//
// [DoublePendulum] implements [dynamo.System] and [dynamo.Hamiltonian] in
// canonical coordinates (theta1, theta2, p1, p2). [Oscillator] owns a
// pendulum state, advances it with a fixed internal step and keeps a
// bounded trace of the outer bob.
//
//	osc, err := physics.NewOscillator(physics.NewDoublePendulum(), integrators.NewRK4(), 0.002, 100)
//	osc.SetInitialAngles(math.Pi/2, math.Pi/2)
//	for i := 0; i < 60; i++ {
//	    _ = osc.Step(1.0 / 60)
//	}
//	e := osc.Energy()
package physics
