package world

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/fireworks"
	"github.com/san-kum/physim/internal/integrators"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/rigid"
	"github.com/san-kum/physim/internal/vec"
)

type Option func(*World)

func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

type World struct {
	cfg    *config.Config
	logger *slog.Logger
	rng    *rand.Rand

	bounds   rigid.Bounds
	stepper  *rigid.Stepper
	resolver *rigid.Resolver
	bodies   []*rigid.Body
	added    []rigid.Body

	fwEnv    fireworks.Env
	spawner  *fireworks.Spawner
	emitters []*fireworks.Emitter

	osc            *physics.Oscillator
	theta1, theta2 float64
	pivot          vec.Vec2

	paused     bool
	time       float64
	steps      int
	collisions int
	wallHits   int
	launches   int
	explosions int
}

// New validates cfg and builds the initial population from cfg.Seed.
func New(cfg *config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:    cfg.Clone(),
		logger: slog.Default(),
		theta1: cfg.Pendulum.Theta1,
		theta2: cfg.Pendulum.Theta2,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.build(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) build() error {
	c := w.cfg
	w.rng = rand.New(rand.NewSource(c.Seed))
	w.bounds = rigid.Bounds{Width: c.Width, Height: c.Height}
	gravity := vec.New(0, c.Gravity)

	integ, err := integrators.New(c.Balls.Integrator)
	if err != nil {
		return err
	}
	w.stepper, err = rigid.NewStepper(rigid.Env{
		Gravity:  gravity,
		Friction: c.FrictionFactor,
		Bounds:   w.bounds,
	}, integ)
	if err != nil {
		return err
	}
	w.resolver = rigid.NewResolver(w.logger)

	w.bodies = nil
	if c.HasBalls() {
		w.bodies, err = rigid.Spawn(w.rng, rigid.SpawnParams{
			Count:       c.BallCount,
			MinRadius:   c.Balls.MinRadius,
			MaxRadius:   c.Balls.MaxRadius,
			MaxSpeed:    c.Balls.MaxSpeed,
			Density:     c.Balls.Density,
			Restitution: c.WallRestitution,
		}, w.bounds)
		if err != nil {
			return err
		}
	}
	for i := range w.added {
		b := w.added[i]
		w.bodies = append(w.bodies, &b)
	}

	f := c.Fireworks
	w.fwEnv = fireworks.Env{
		Gravity:            gravity,
		Drag:               f.ParticleDrag,
		ExplodeProbability: f.ExplodeProbability,
		Burst: fireworks.Burst{
			MinCount:    f.ExplosionParticleRange[0],
			MaxCount:    f.ExplosionParticleRange[1],
			MinSpeed:    f.ParticleSpeed[0],
			MaxSpeed:    f.ParticleSpeed[1],
			MinLifetime: f.ParticleLifetime[0],
			MaxLifetime: f.ParticleLifetime[1],
		},
	}
	if err := w.fwEnv.Validate(); err != nil {
		return err
	}
	policy, err := fireworks.ParsePolicy(f.Scheduler.Policy)
	if err != nil {
		return err
	}
	if !c.HasFireworks() {
		policy = fireworks.Manual
	}
	w.spawner, err = fireworks.NewSpawner(fireworks.Launch{
		MinSpeed: f.LaunchSpeed[0],
		MaxSpeed: f.LaunchSpeed[1],
		Margin:   f.LaunchMargin,
		Width:    c.Width,
		Floor:    c.Height,
	}, fireworks.Schedule{
		Policy:      policy,
		Probability: f.Scheduler.Probability,
		MinDelay:    f.Scheduler.MinDelay,
		MaxDelay:    f.Scheduler.MaxDelay,
	})
	if err != nil {
		return err
	}
	w.emitters = nil

	w.osc = nil
	if c.HasPendulum() {
		p := c.Pendulum
		pinteg, err := integrators.New(p.Integrator)
		if err != nil {
			return err
		}
		dp := &physics.DoublePendulum{
			M1: p.Masses[0], M2: p.Masses[1],
			L1: p.Lengths[0], L2: p.Lengths[1],
			Gravity: p.Gravity,
		}
		w.osc, err = physics.NewOscillator(dp, pinteg, p.Dt, p.TraceLength)
		if err != nil {
			return err
		}
		w.osc.SetInitialAngles(w.theta1, w.theta2)
		w.pivot = vec.New(c.Width/2, c.Height/2)
	}

	w.paused = false
	w.time = 0
	w.steps = 0
	w.collisions = 0
	w.wallHits = 0
	w.launches = 0
	w.explosions = 0
	return nil
}

// Step advances the world by dt. A rejected dt leaves the world untouched;
// a paused world accepts dt and does nothing.
func (w *World) Step(dt float64) error {
	if err := dynamo.CheckStep(dt); err != nil {
		return fmt.Errorf("world step %d: %w", w.steps, err)
	}
	if w.paused {
		return nil
	}

	w.wallHits = w.stepper.StepAll(w.bodies, dt)
	for _, e := range w.emitters {
		if e.Step(w.rng, &w.fwEnv, dt) {
			w.explosions++
			w.logger.Debug("firework exploded",
				"pattern", e.Pattern(), "sparks", len(e.Particles()), "y", e.Pos().Y())
		}
	}
	if w.osc != nil {
		if err := w.osc.Step(dt); err != nil {
			return &dynamo.SimulationError{Step: w.steps, Time: w.time, Wrapped: err}
		}
	}

	w.collisions = w.resolver.Resolve(w.bodies)
	w.stepper.ClampAll(w.bodies)

	live := w.emitters[:0]
	for _, e := range w.emitters {
		if e.IsAlive() {
			live = append(live, e)
		}
	}
	clear(w.emitters[len(live):])
	w.emitters = live

	if e := w.spawner.Auto(w.rng, dt); e != nil {
		w.addEmitter(e)
	}

	w.time += dt
	w.steps++
	return nil
}

// Tick steps by the configured frame dt.
func (w *World) Tick() error { return w.Step(w.cfg.Dt) }

func (w *World) addEmitter(e *fireworks.Emitter) {
	w.emitters = append(w.emitters, e)
	w.launches++
	w.logger.Debug("firework launched", "x", e.Pos().X(), "speed", -e.Vel().Y())
}

// AddBody adds a caller-specified body. It must be valid and lie inside the
// bounds; it survives Reset in its original state.
func (w *World) AddBody(b *rigid.Body) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if !w.bounds.Contains(b) {
		return dynamo.Invalid("position", b.Pos, "body must lie inside the world")
	}
	w.added = append(w.added, *b)
	w.bodies = append(w.bodies, b)
	return nil
}

func (w *World) Config() *config.Config { return w.cfg.Clone() }
func (w *World) Time() float64          { return w.time }
func (w *World) StepCount() int         { return w.steps }
func (w *World) Paused() bool           { return w.paused }
func (w *World) Bounds() rigid.Bounds   { return w.bounds }

// Oscillator exposes the pendulum for analysis; nil when not in this mode.
func (w *World) Oscillator() *physics.Oscillator { return w.osc }
