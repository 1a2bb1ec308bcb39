package fireworks

import (
	"image/color"
	"math/rand"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vec"
)

type Phase int

const (
	Ascending Phase = iota
	Exploded
)

func (p Phase) String() string {
	if p == Exploded {
		return "exploded"
	}
	return "ascending"
}

// Emitter is one firework. While ascending it is a single rocket; once
// exploded it owns its sparks.
type Emitter struct {
	phase     Phase
	pos       vec.Vec2
	vel       vec.Vec2
	color     color.RGBA
	pattern   Pattern
	particles []Particle
}

// NewEmitter places an ascending rocket at pos moving upward with speed.
func NewEmitter(pos vec.Vec2, speed float64, c color.RGBA) *Emitter {
	return &Emitter{
		phase: Ascending,
		pos:   pos,
		vel:   vec.New(0, -speed),
		color: c,
	}
}

func (e *Emitter) Phase() Phase          { return e.phase }
func (e *Emitter) Pos() vec.Vec2         { return e.pos }
func (e *Emitter) Vel() vec.Vec2         { return e.vel }
func (e *Emitter) Color() color.RGBA     { return e.color }
func (e *Emitter) Pattern() Pattern      { return e.pattern }
func (e *Emitter) Particles() []Particle { return e.particles }

// IsAlive is false once the emitter has exploded and every spark expired.
func (e *Emitter) IsAlive() bool {
	return e.phase == Ascending || len(e.particles) > 0
}

// Explode bursts with a randomly chosen pattern.
func (e *Emitter) Explode(rng *rand.Rand, env *Env) error {
	return e.ExplodeWith(RandomPattern(rng), rng, env)
}

// ExplodeWith bursts with the given pattern. The transition is one-way.
func (e *Emitter) ExplodeWith(p Pattern, rng *rand.Rand, env *Env) error {
	if e.phase == Exploded {
		return dynamo.ErrAlreadyExploded
	}
	e.burst(p, rng, env)
	return nil
}

// burst performs the transition; callers have checked the phase.
func (e *Emitter) burst(p Pattern, rng *rand.Rand, env *Env) {
	b := env.Burst
	n := b.MinCount + rng.Intn(b.MaxCount-b.MinCount+1)
	e.phase = Exploded
	e.pattern = p
	e.vel = vec.Zero
	e.particles = burst(p, rng, n, e.pos, e.color, b)
}

// Step advances the rocket or its sparks by dt and reports whether the
// emitter exploded during this call.
func (e *Emitter) Step(rng *rand.Rand, env *Env, dt float64) bool {
	if e.phase == Exploded {
		e.particles = stepAll(e.particles, env.Gravity, env.Drag, dt)
		return false
	}

	e.vel = e.vel.Add(env.Gravity.Mul(dt))
	e.pos = e.pos.Add(e.vel.Mul(dt))

	apex := e.vel.Y() >= 0
	ceiling := e.pos.Y() <= 0
	early := env.ExplodeProbability > 0 && rng.Float64() < env.ExplodeProbability
	if apex || ceiling || early {
		e.burst(RandomPattern(rng), rng, env)
		return true
	}
	return false
}
