// Package viz draws a world in the terminal.
//
// The live view runs on Bubble Tea and renders through a [Canvas] of
// braille cells, each 2x4 dots, so an 80x24 canvas resolves 160x96 points.
//
// # Key Bindings
//
//	Space  - pause / resume
//	R      - reset the world from its seed
//	F      - launch a firework
//	←/→    - kick the upper pendulum arm
//	T      - cycle color themes
//	?      - help overlay
//	Q      - quit
//
// A left click launches a firework under the pointer; a right click (or
// any click when the world has no fireworks) swings the upper pendulum arm
// toward the pointer.
package viz
