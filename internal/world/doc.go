// Package world owns every simulated entity and advances them together.
//
// One [World.Step] integrates bodies, rockets, sparks and the oscillator,
// resolves body pairs, drops finished emitters and finally lets the
// scheduler launch new rockets. Commands are applied between steps and
// queries read the state left by the last step. A World is not safe for
// concurrent use; independent worlds share nothing.
package world
