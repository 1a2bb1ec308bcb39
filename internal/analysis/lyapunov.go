package analysis

import (
	"math"

	"github.com/san-kum/physim/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent. A shadow
// trajectory starts eps away along the first coordinate; after every step
// the log growth of the separation is accumulated and the shadow is pulled
// back to distance eps along the current separation direction.
func LyapunovExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	eps float64,
) float64 {
	if len(x0) == 0 {
		return 0
	}
	xp := x0.Clone()
	xp[0] += eps
	return separationRate(sys, integ, x0, xp, dt, duration, eps)
}

// LyapunovSpectrum perturbs each coordinate in turn. The values are the
// separation rates seen from each starting direction; they converge to the
// largest exponent for long durations, not to the full spectrum.
func LyapunovSpectrum(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	eps float64,
) []float64 {
	spectrum := make([]float64, len(x0))
	for i := range x0 {
		xp := x0.Clone()
		xp[i] += eps
		spectrum[i] = separationRate(sys, integ, x0, xp, dt, duration, eps)
	}
	return spectrum
}

func separationRate(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0, x0p dynamo.State,
	dt, duration, d0 float64,
) float64 {
	if d0 <= 0 || dt <= 0 {
		return 0
	}
	x := x0.Clone()
	xp := x0p.Clone()
	t := 0.0
	sumLog := 0.0

	for t < duration {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}
