// Package analysis characterizes the chaotic oscillator offline.
//
//   - [LyapunovExponent]: largest exponent via renormalized trajectory separation
//   - [LyapunovSpectrum]: separation rate per perturbed state dimension
//   - [BifurcationDiagram]: Poincaré crossings as one parameter is swept
//   - [GeneratePortrait]: 2D phase space trajectories
//   - [GeneratePoincareSection]: points where a coordinate crosses a threshold
//   - [PowerSpectrum]: magnitude spectrum of a sampled series
//
// A positive largest exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(sys, integ, x0, dt, duration, 1e-8)
package analysis
