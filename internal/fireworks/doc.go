// Package fireworks implements rockets that ascend, burst into sparks and
// fade out.
//
// An [Emitter] starts Ascending at the floor and switches once to Exploded,
// spawning a batch of [Particle] values shaped by a [Pattern]. The owner of
// the emitters decides when to drop one by asking [Emitter.IsAlive].
// A [Spawner] creates emitters on command or from its [Scheduler].
package fireworks
