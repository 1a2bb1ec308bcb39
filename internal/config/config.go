package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/fireworks"
	"github.com/san-kum/physim/internal/integrators"
)

const (
	DefaultDt              = 1.0 / 60
	DefaultDuration        = 10.0
	DefaultWidth           = 800.0
	DefaultHeight          = 600.0
	DefaultGravity         = 600.0
	DefaultWallRestitution = 0.95
	DefaultFriction        = 1.0
	DefaultBallCount       = 5
	DefaultPendulumDt      = 0.002
	DefaultTraceLength     = 100
	DefaultPendulumScale   = 120.0
)

// Modes lists the populations a world can be built with.
var Modes = []string{"all", "balls", "fireworks", "pendulum"}

type Config struct {
	Mode            string          `yaml:"mode"`
	Seed            int64           `yaml:"seed"`
	Dt              float64         `yaml:"dt"`
	Duration        float64         `yaml:"duration"`
	Width           float64         `yaml:"width"`
	Height          float64         `yaml:"height"`
	Gravity         float64         `yaml:"gravity"`
	WallRestitution float64         `yaml:"wall_restitution"`
	FrictionFactor  float64         `yaml:"friction_factor"`
	BallCount       int             `yaml:"ball_count"`
	Balls           BallsConfig     `yaml:"balls"`
	Fireworks       FireworksConfig `yaml:"fireworks"`
	Pendulum        PendulumConfig  `yaml:"pendulum"`
}

type BallsConfig struct {
	MinRadius  float64 `yaml:"min_radius"`
	MaxRadius  float64 `yaml:"max_radius"`
	MaxSpeed   float64 `yaml:"max_speed"`
	Density    float64 `yaml:"density"`
	Integrator string  `yaml:"integrator"`
}

type FireworksConfig struct {
	ExplosionParticleRange [2]int          `yaml:"explosion_particle_range,flow"`
	LaunchSpeed            [2]float64      `yaml:"launch_speed,flow"`
	ParticleSpeed          [2]float64      `yaml:"particle_speed,flow"`
	ParticleLifetime       [2]float64      `yaml:"particle_lifetime,flow"`
	ParticleDrag           float64         `yaml:"particle_drag"`
	ExplodeProbability     float64         `yaml:"explode_probability"`
	LaunchMargin           float64         `yaml:"launch_margin"`
	Scheduler              SchedulerConfig `yaml:"scheduler"`
}

type SchedulerConfig struct {
	Policy      string  `yaml:"policy"`
	Probability float64 `yaml:"probability"`
	MinDelay    float64 `yaml:"min_delay"`
	MaxDelay    float64 `yaml:"max_delay"`
}

type PendulumConfig struct {
	Lengths     [2]float64 `yaml:"lengths,flow"`
	Masses      [2]float64 `yaml:"masses,flow"`
	Gravity     float64    `yaml:"gravity"`
	Dt          float64    `yaml:"dt"`
	Integrator  string     `yaml:"integrator"`
	Theta1      float64    `yaml:"theta1"`
	Theta2      float64    `yaml:"theta2"`
	TraceLength int        `yaml:"trace_length"`
	// Scale converts pendulum lengths to pixels for the query surface.
	Scale float64 `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:            "all",
		Seed:            1,
		Dt:              DefaultDt,
		Duration:        DefaultDuration,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		Gravity:         DefaultGravity,
		WallRestitution: DefaultWallRestitution,
		FrictionFactor:  DefaultFriction,
		BallCount:       DefaultBallCount,
		Balls: BallsConfig{
			MinRadius:  20,
			MaxRadius:  40,
			MaxSpeed:   300,
			Density:    1,
			Integrator: "semi_euler",
		},
		Fireworks: FireworksConfig{
			ExplosionParticleRange: [2]int{50, 80},
			LaunchSpeed:            [2]float64{480, 720},
			ParticleSpeed:          [2]float64{180, 360},
			ParticleLifetime:       [2]float64{0.5, 1.0},
			ParticleDrag:           1,
			LaunchMargin:           50,
			Scheduler: SchedulerConfig{
				Policy:      "bernoulli",
				Probability: 0.02,
				MinDelay:    0.5,
				MaxDelay:    2.0,
			},
		},
		Pendulum: PendulumConfig{
			Lengths:     [2]float64{1, 1},
			Masses:      [2]float64{1, 1},
			Gravity:     9.81,
			Dt:          DefaultPendulumDt,
			Integrator:  "rk4",
			Theta1:      math.Pi / 2,
			Theta2:      math.Pi / 2,
			TraceLength: DefaultTraceLength,
			Scale:       DefaultPendulumScale,
		},
	}
}

// Load overlays the file at path on the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) HasBalls() bool     { return c.Mode == "all" || c.Mode == "balls" }
func (c *Config) HasFireworks() bool { return c.Mode == "all" || c.Mode == "fireworks" }
func (c *Config) HasPendulum() bool  { return c.Mode == "all" || c.Mode == "pendulum" }

// Steps is the number of frames covering Duration.
func (c *Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

// Validate reports the first rejected option as a *dynamo.ConfigError.
func (c *Config) Validate() error {
	if !knownMode(c.Mode) {
		return dynamo.Invalid("mode", c.Mode, "unknown mode")
	}
	if dynamo.CheckStep(c.Dt) != nil {
		return dynamo.Invalid("dt", c.Dt, "must be a finite positive number")
	}
	if c.Duration < 0 || math.IsNaN(c.Duration) {
		return dynamo.Invalid("duration", c.Duration, "must be non-negative")
	}
	if !(c.Width > 0) {
		return dynamo.Invalid("width", c.Width, "must be positive")
	}
	if !(c.Height > 0) {
		return dynamo.Invalid("height", c.Height, "must be positive")
	}
	if !finite(c.Gravity) {
		return dynamo.Invalid("gravity", c.Gravity, "must be finite")
	}
	if !(c.WallRestitution >= 0 && c.WallRestitution <= 1) {
		return dynamo.Invalid("wall_restitution", c.WallRestitution, "must be in [0,1]")
	}
	if !(c.FrictionFactor > 0 && c.FrictionFactor <= 1) {
		return dynamo.Invalid("friction_factor", c.FrictionFactor, "must be in (0,1]")
	}
	if c.BallCount < 0 {
		return dynamo.Invalid("ball_count", c.BallCount, "must be non-negative")
	}
	if err := c.Balls.validate(c.Width, c.Height); err != nil {
		return err
	}
	if err := c.Fireworks.validate(c.Width); err != nil {
		return err
	}
	return c.Pendulum.validate()
}

func (b BallsConfig) validate(w, h float64) error {
	switch {
	case !(b.MinRadius > 0):
		return dynamo.Invalid("balls.min_radius", b.MinRadius, "must be positive")
	case b.MaxRadius < b.MinRadius:
		return dynamo.Invalid("balls.max_radius", b.MaxRadius, "must be >= min_radius")
	case 2*b.MaxRadius > math.Min(w, h):
		return dynamo.Invalid("balls.max_radius", b.MaxRadius, "does not fit inside the world")
	case b.MaxSpeed < 0 || !finite(b.MaxSpeed):
		return dynamo.Invalid("balls.max_speed", b.MaxSpeed, "must be non-negative")
	case !(b.Density > 0):
		return dynamo.Invalid("balls.density", b.Density, "must be positive")
	case !integrators.Known(b.Integrator):
		return dynamo.Invalid("balls.integrator", b.Integrator, "unknown integrator")
	}
	return nil
}

func (f FireworksConfig) validate(w float64) error {
	n := f.ExplosionParticleRange
	switch {
	case n[0] < 1 || n[1] < n[0]:
		return dynamo.Invalid("fireworks.explosion_particle_range", n, "need 1 <= min <= max")
	case !positiveRange(f.LaunchSpeed):
		return dynamo.Invalid("fireworks.launch_speed", f.LaunchSpeed, "must be positive with min <= max")
	case !positiveRange(f.ParticleSpeed):
		return dynamo.Invalid("fireworks.particle_speed", f.ParticleSpeed, "must be positive with min <= max")
	case !positiveRange(f.ParticleLifetime):
		return dynamo.Invalid("fireworks.particle_lifetime", f.ParticleLifetime, "must be positive with min <= max")
	case !(f.ParticleDrag > 0 && f.ParticleDrag <= 1):
		return dynamo.Invalid("fireworks.particle_drag", f.ParticleDrag, "must be in (0,1]")
	case !(f.ExplodeProbability >= 0 && f.ExplodeProbability <= 1):
		return dynamo.Invalid("fireworks.explode_probability", f.ExplodeProbability, "must be in [0,1]")
	case f.LaunchMargin < 0 || 2*f.LaunchMargin > w:
		return dynamo.Invalid("fireworks.launch_margin", f.LaunchMargin, "must be in [0, width/2]")
	}
	s := f.Scheduler
	if _, err := fireworks.ParsePolicy(s.Policy); err != nil {
		return dynamo.Invalid("fireworks.scheduler.policy", s.Policy, "unknown policy")
	}
	switch {
	case !(s.Probability >= 0 && s.Probability <= 1):
		return dynamo.Invalid("fireworks.scheduler.probability", s.Probability, "must be in [0,1]")
	case s.MinDelay < 0 || math.IsNaN(s.MinDelay):
		return dynamo.Invalid("fireworks.scheduler.min_delay", s.MinDelay, "must be >= 0")
	case !(s.MaxDelay >= s.MinDelay) || math.IsInf(s.MaxDelay, 0):
		return dynamo.Invalid("fireworks.scheduler.max_delay", s.MaxDelay, "must be >= min_delay")
	}
	return nil
}

func (p PendulumConfig) validate() error {
	switch {
	case !(p.Lengths[0] > 0) || !(p.Lengths[1] > 0):
		return dynamo.Invalid("pendulum.lengths", p.Lengths, "must be positive")
	case !(p.Masses[0] > 0) || !(p.Masses[1] > 0):
		return dynamo.Invalid("pendulum.masses", p.Masses, "must be positive")
	case p.Gravity < 0 || !finite(p.Gravity):
		return dynamo.Invalid("pendulum.gravity", p.Gravity, "must be non-negative")
	case dynamo.CheckStep(p.Dt) != nil:
		return dynamo.Invalid("pendulum.dt", p.Dt, "must be a finite positive number")
	case !integrators.Known(p.Integrator):
		return dynamo.Invalid("pendulum.integrator", p.Integrator, "unknown integrator")
	case !integrators.General(p.Integrator):
		return dynamo.Invalid("pendulum.integrator", p.Integrator, "state holds momenta, not rates")
	case !finite(p.Theta1) || !finite(p.Theta2):
		return dynamo.Invalid("pendulum.theta", [2]float64{p.Theta1, p.Theta2}, "must be finite")
	case p.TraceLength < 1:
		return dynamo.Invalid("pendulum.trace_length", p.TraceLength, "must be positive")
	case !(p.Scale > 0):
		return dynamo.Invalid("pendulum.scale", p.Scale, "must be positive")
	}
	return nil
}

func knownMode(m string) bool {
	for _, k := range Modes {
		if k == m {
			return true
		}
	}
	return false
}

func positiveRange(r [2]float64) bool {
	return r[0] > 0 && r[1] >= r[0] && !math.IsInf(r[1], 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
