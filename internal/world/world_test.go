package world_test

import (
	"errors"
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/rigid"
	"github.com/san-kum/physim/internal/vec"
	"github.com/san-kum/physim/internal/world"
)

const frame = 1.0 / 60

func newWorld(mod func(c *config.Config)) *world.World {
	cfg := config.DefaultConfig()
	mod(cfg)
	w, err := world.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return w
}

func ball(x, y, vx, vy, r, m, e float64) *rigid.Body {
	b, err := rigid.NewBody(vec.New(x, y), vec.New(vx, vy), r, m, e, color.RGBA{A: 255})
	Expect(err).NotTo(HaveOccurred())
	return b
}

func emptyBalls(c *config.Config) {
	c.Mode = "balls"
	c.BallCount = 0
	c.Gravity = 0
	c.FrictionFactor = 1
}

type recorder struct {
	began, ended bool
	width        float64
	bodies       int
	particles    int
	pendulums    int
}

func (r *recorder) Begin(w, h float64)          { r.began, r.width = true, w }
func (r *recorder) Body(world.BodyView)         { r.bodies++ }
func (r *recorder) Particle(world.ParticleView) { r.particles++ }
func (r *recorder) Pendulum(world.PendulumView) { r.pendulums++ }
func (r *recorder) End()                        { r.ended = true }

var _ = Describe("World", func() {
	Describe("construction", func() {
		It("rejects invalid configuration without clamping", func() {
			cfg := config.DefaultConfig()
			cfg.WallRestitution = 1.5
			_, err := world.New(cfg)
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())

			var ce *dynamo.ConfigError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Field).To(Equal("wall_restitution"))
		})

		It("builds the population for the configured mode", func() {
			w := newWorld(func(c *config.Config) { c.Mode = "balls"; c.BallCount = 7 })
			Expect(w.Bodies()).To(HaveLen(7))
			_, ok := w.Pendulum()
			Expect(ok).To(BeFalse())

			w = newWorld(func(c *config.Config) { c.Mode = "pendulum" })
			Expect(w.Bodies()).To(BeEmpty())
			_, ok = w.Pendulum()
			Expect(ok).To(BeTrue())
		})

		It("rejects added bodies outside the bounds", func() {
			w := newWorld(emptyBalls)
			err := w.AddBody(ball(-5, 10, 0, 0, 1, 1, 1))
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
		})
	})

	Describe("stepping", func() {
		It("rejects a non-positive dt before mutating anything", func() {
			w := newWorld(func(c *config.Config) {})
			before := w.Bodies()
			for _, dt := range []float64{0, -frame, math.NaN(), math.Inf(1)} {
				Expect(errors.Is(w.Step(dt), dynamo.ErrInvalidStep)).To(BeTrue())
			}
			Expect(w.Bodies()).To(Equal(before))
			Expect(w.StepCount()).To(BeZero())
		})

		It("keeps every body inside the bounds", func() {
			w := newWorld(func(c *config.Config) {
				c.Mode = "balls"
				c.BallCount = 12
				c.Balls.MaxSpeed = 1500
			})
			for i := 0; i < 1200; i++ {
				Expect(w.Tick()).To(Succeed())
				for _, b := range w.Bodies() {
					Expect(b.Pos.X()).To(BeNumerically(">=", b.Radius))
					Expect(b.Pos.X()).To(BeNumerically("<=", 800-b.Radius))
					Expect(b.Pos.Y()).To(BeNumerically(">=", b.Radius))
					Expect(b.Pos.Y()).To(BeNumerically("<=", 600-b.Radius))
				}
			}
		})

		It("does nothing while paused but still validates dt", func() {
			w := newWorld(func(c *config.Config) {})
			Expect(w.TogglePause()).To(BeTrue())
			before := w.Bodies()

			Expect(w.Step(frame)).To(Succeed())
			Expect(w.Bodies()).To(Equal(before))
			Expect(w.Time()).To(BeZero())
			Expect(errors.Is(w.Step(-1), dynamo.ErrInvalidStep)).To(BeTrue())

			Expect(w.Apply(world.Command{Kind: world.CmdTogglePause})).To(Succeed())
			Expect(w.Paused()).To(BeFalse())
			Expect(w.Step(frame)).To(Succeed())
			Expect(w.StepCount()).To(Equal(1))
		})
	})

	Describe("collisions", func() {
		It("swaps velocities of two equal balls meeting head on", func() {
			w := newWorld(emptyBalls)
			Expect(w.AddBody(ball(10, 10, 1, 0, 1, 1, 1))).To(Succeed())
			Expect(w.AddBody(ball(11.9, 10, -1, 0, 1, 1, 1))).To(Succeed())

			Expect(w.Step(frame)).To(Succeed())

			bs := w.Bodies()
			Expect(w.Collisions()).To(Equal(1))
			Expect(bs[0].Vel.X()).To(BeNumerically("~", -1, 1e-12))
			Expect(bs[1].Vel.X()).To(BeNumerically("~", 1, 1e-12))
		})

		It("conserves momentum through an elastic collision", func() {
			w := newWorld(emptyBalls)
			Expect(w.AddBody(ball(100, 100, 40, 10, 10, 2, 1))).To(Succeed())
			Expect(w.AddBody(ball(118, 104, -30, 0, 10, 5, 1))).To(Succeed())
			p0 := w.Momentum()

			Expect(w.Step(frame)).To(Succeed())

			Expect(w.Collisions()).To(Equal(1))
			p1 := w.Momentum()
			Expect(p1.X()).To(BeNumerically("~", p0.X(), 1e-9))
			Expect(p1.Y()).To(BeNumerically("~", p0.Y(), 1e-9))
		})

		It("leaves separating pairs' velocities alone", func() {
			w := newWorld(emptyBalls)
			Expect(w.AddBody(ball(100, 100, -5, 0, 10, 1, 1))).To(Succeed())
			Expect(w.AddBody(ball(115, 100, 5, 0, 10, 1, 1))).To(Succeed())

			Expect(w.Step(frame)).To(Succeed())

			Expect(w.Collisions()).To(BeZero())
			bs := w.Bodies()
			Expect(bs[0].Vel).To(Equal(vec.New(-5, 0)))
			Expect(bs[1].Vel).To(Equal(vec.New(5, 0)))
		})

		It("loses energy at walls when restitution is below one", func() {
			w := newWorld(emptyBalls)
			Expect(w.AddBody(ball(795, 300, 600, 0, 5, 1, 0.5))).To(Succeed())
			e0 := w.KineticEnergy()

			Expect(w.Step(frame)).To(Succeed())

			Expect(w.WallHits()).To(Equal(1))
			Expect(w.KineticEnergy()).To(BeNumerically("~", e0*0.25, 1e-9))
		})
	})

	Describe("fireworks", func() {
		manual := func(c *config.Config) {
			c.Mode = "fireworks"
			c.Fireworks.Scheduler.Policy = "manual"
		}

		It("launches on command and removes the emitter once its sparks expire", func() {
			w := newWorld(manual)
			Expect(w.LaunchFireworkAt(400)).To(Succeed())
			Expect(w.Rockets()).To(HaveLen(1))
			Expect(w.Rockets()[0].Alpha).To(Equal(uint8(255)))

			exploded := false
			for i := 0; i < 600 && w.EmitterCount() > 0; i++ {
				Expect(w.Tick()).To(Succeed())
				if w.ParticleCount() > 0 {
					exploded = true
					Expect(w.Rockets()).To(BeEmpty())
					Expect(w.Particles()).To(HaveLen(w.ParticleCount()))
				}
			}
			Expect(exploded).To(BeTrue())
			Expect(w.EmitterCount()).To(BeZero())
			Expect(w.Explosions()).To(Equal(1))
		})

		It("rejects launches outside the floor", func() {
			w := newWorld(manual)
			err := w.Apply(world.Command{Kind: world.CmdLaunchAt, X: 900})
			Expect(errors.Is(err, dynamo.ErrOutOfBounds)).To(BeTrue())
			Expect(w.EmitterCount()).To(BeZero())
		})

		It("self-schedules launches with the bernoulli policy", func() {
			w := newWorld(func(c *config.Config) {
				c.Mode = "fireworks"
				c.Fireworks.Scheduler.Policy = "bernoulli"
				c.Fireworks.Scheduler.Probability = 0.5
			})
			for i := 0; i < 120; i++ {
				Expect(w.Tick()).To(Succeed())
			}
			Expect(w.Launches()).To(BeNumerically(">", 30))
		})

		It("self-schedules launches with the interval policy", func() {
			w := newWorld(func(c *config.Config) {
				c.Mode = "fireworks"
				c.Fireworks.Scheduler.Policy = "interval"
				c.Fireworks.Scheduler.MinDelay = 0.5
				c.Fireworks.Scheduler.MaxDelay = 1.0
			})
			for i := 0; i < 600; i++ {
				Expect(w.Tick()).To(Succeed())
			}
			Expect(w.Launches()).To(BeNumerically(">=", 10))
			Expect(w.Launches()).To(BeNumerically("<=", 20))
		})
	})

	Describe("pendulum", func() {
		pendulum := func(c *config.Config) { c.Mode = "pendulum" }

		It("is deterministic across independent worlds", func() {
			a, b := newWorld(pendulum), newWorld(pendulum)
			for i := 0; i < 300; i++ {
				Expect(a.Tick()).To(Succeed())
				Expect(b.Tick()).To(Succeed())
			}
			pa, _ := a.Pendulum()
			pb, _ := b.Pendulum()
			Expect(pa).To(Equal(pb))
		})

		It("keeps theta2 when theta1 is perturbed", func() {
			w := newWorld(pendulum)
			for i := 0; i < 30; i++ {
				Expect(w.Tick()).To(Succeed())
			}
			before, _ := w.Pendulum()

			Expect(w.Apply(world.Command{Kind: world.CmdPerturbTheta1, Theta1: 0.4})).To(Succeed())

			after, _ := w.Pendulum()
			Expect(after.Theta1).To(Equal(0.4))
			Expect(after.Theta2).To(Equal(before.Theta2))
			Expect(after.Omega1).To(BeZero())
			Expect(after.Omega2).To(BeZero())
			Expect(after.Trace).To(BeEmpty())
		})

		It("bounds the trace", func() {
			w := newWorld(func(c *config.Config) {
				c.Mode = "pendulum"
				c.Pendulum.TraceLength = 20
			})
			for i := 0; i < 50; i++ {
				Expect(w.Tick()).To(Succeed())
			}
			p, _ := w.Pendulum()
			Expect(p.Trace).To(HaveLen(20))
			Expect(p.Trace[19]).To(Equal(p.Bob2))
		})

		It("restarts from newly set initial angles", func() {
			w := newWorld(pendulum)
			Expect(w.SetInitialAngles(0.1, -0.2)).To(Succeed())
			p, _ := w.Pendulum()
			Expect(p.Theta1).To(Equal(0.1))
			Expect(p.Theta2).To(Equal(-0.2))

			Expect(w.Tick()).To(Succeed())
			Expect(w.Reset()).To(Succeed())
			p, _ = w.Pendulum()
			Expect(p.Theta1).To(Equal(0.1))
			Expect(p.Theta2).To(Equal(-0.2))
		})

		It("maps a click below the pivot to theta1 = 0", func() {
			w := newWorld(pendulum)
			Expect(w.PointerAngle(400, 500)).To(BeNumerically("~", 0, 1e-12))
			Expect(w.PointerAngle(500, 300)).To(BeNumerically("~", math.Pi/2, 1e-12))
		})

		It("reports a missing oscillator", func() {
			w := newWorld(emptyBalls)
			Expect(errors.Is(w.PerturbTheta1(1), dynamo.ErrNoOscillator)).To(BeTrue())
			Expect(errors.Is(w.SetInitialAngles(1, 1), dynamo.ErrNoOscillator)).To(BeTrue())
		})
	})

	Describe("reset", func() {
		It("is idempotent and replays the same run", func() {
			w := newWorld(func(c *config.Config) {})
			fresh := w.Bodies()

			for i := 0; i < 90; i++ {
				Expect(w.Tick()).To(Succeed())
			}
			firstRun := w.Bodies()

			Expect(w.Reset()).To(Succeed())
			Expect(w.Reset()).To(Succeed())
			Expect(w.Bodies()).To(Equal(fresh))
			Expect(w.Time()).To(BeZero())
			Expect(w.EmitterCount()).To(BeZero())

			for i := 0; i < 90; i++ {
				Expect(w.Tick()).To(Succeed())
			}
			Expect(w.Bodies()).To(Equal(firstRun))
		})

		It("restores added bodies to their initial state", func() {
			w := newWorld(emptyBalls)
			Expect(w.AddBody(ball(50, 50, 10, 0, 5, 1, 1))).To(Succeed())
			Expect(w.Tick()).To(Succeed())
			Expect(w.Apply(world.Command{Kind: world.CmdReset})).To(Succeed())
			Expect(w.Bodies()[0].Pos).To(Equal(vec.New(50, 50)))
		})
	})

	Describe("commands", func() {
		It("parses known kinds and rejects unknown ones", func() {
			k, err := world.ParseCommandKind("perturb_theta1")
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(Equal(world.CmdPerturbTheta1))

			_, err = world.ParseCommandKind("explode_all")
			Expect(errors.Is(err, dynamo.ErrUnknownCommand)).To(BeTrue())

			w := newWorld(emptyBalls)
			Expect(errors.Is(w.Apply(world.Command{Kind: world.CommandKind(42)}), dynamo.ErrUnknownCommand)).To(BeTrue())
		})
	})

	Describe("rendering", func() {
		It("pushes every entity to the renderer inside one frame", func() {
			w := newWorld(func(c *config.Config) {
				c.Fireworks.Scheduler.Policy = "manual"
			})
			Expect(w.LaunchFireworkAt(200)).To(Succeed())

			r := &recorder{}
			w.Render(r)

			Expect(r.began && r.ended).To(BeTrue())
			Expect(r.width).To(Equal(800.0))
			Expect(r.bodies).To(Equal(5))
			Expect(r.particles).To(Equal(1))
			Expect(r.pendulums).To(Equal(1))
		})
	})
})
