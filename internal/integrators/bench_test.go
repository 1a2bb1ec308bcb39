package integrators

import (
	"testing"

	"github.com/san-kum/physim/internal/dynamo"
)

type benchPendulum struct{}

func (b *benchPendulum) StateDim() int { return 4 }
func (b *benchPendulum) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[2], x[3], -x[0], -x[1]}
}

func benchmarkIntegrator(b *testing.B, integ dynamo.Integrator) {
	dyn := &benchPendulum{}
	x := dynamo.State{1.0, 0.5, 0.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, 0, 0.002)
	}
}

func BenchmarkEuler(b *testing.B)     { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkSemiEuler(b *testing.B) { benchmarkIntegrator(b, NewSemiImplicitEuler()) }
func BenchmarkRK4(b *testing.B)       { benchmarkIntegrator(b, NewRK4()) }
func BenchmarkRK45(b *testing.B)      { benchmarkIntegrator(b, NewRK45()) }
func BenchmarkVerlet(b *testing.B)    { benchmarkIntegrator(b, NewVerlet()) }
func BenchmarkLeapfrog(b *testing.B)  { benchmarkIntegrator(b, NewLeapfrog()) }
