package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/world"
)

// Columns are the sampled quantities, in CSV order after time.
var Columns = []string{
	"kinetic",
	"potential",
	"momentum_x",
	"momentum_y",
	"collisions",
	"particles",
	"emitters",
	"theta1",
	"theta2",
	"pendulum_energy",
}

// Scripted is a command applied just before the given step runs.
type Scripted struct {
	Step    int
	Command world.Command
}

type Config struct {
	Steps       int
	SampleEvery int
	Script      []Scripted
}

func (c Config) validate() error {
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("sample_every must be non-negative, got %d", c.SampleEvery)
	}
	return nil
}

type Result struct {
	Columns    []string
	Times      []float64
	Samples    [][]float64
	Metrics    map[string]float64
	StepsTaken int
	// Errors holds rejected scripted commands; the run continues past them.
	Errors []error
}

// Last returns the most recent sample, or nil.
func (r *Result) Last() []float64 {
	if len(r.Samples) == 0 {
		return nil
	}
	return r.Samples[len(r.Samples)-1]
}

// Column returns one sampled column by name.
func (r *Result) Column(name string) ([]float64, error) {
	idx := -1
	for i, c := range r.Columns {
		if c == name {
			idx = i
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown column: %s", name)
	}
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s[idx]
	}
	return out, nil
}

// Observer sees the world after every completed step.
type Observer interface {
	OnStep(w *world.World, step int)
}

// Runner drives one world headlessly.
type Runner struct {
	w         *world.World
	metrics   []metrics.Metric
	observers []Observer
	logger    *slog.Logger
}

func NewRunner(w *world.World, ms ...metrics.Metric) *Runner {
	return &Runner{w: w, metrics: ms, logger: slog.Default()}
}

func (r *Runner) World() *world.World { return r.w }

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }
func (r *Runner) SetLogger(l *slog.Logger)   { r.logger = l }

// Run steps the world cfg.Steps times. Scripted commands fire before the
// step with the matching index; a sample is taken at step 0 and then every
// SampleEvery steps (never when SampleEvery is 0). Cancellation returns the
// partial result with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Columns: Columns,
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	script := sortedScript(cfg.Script)
	next := 0

	if cfg.SampleEvery > 0 {
		r.sample(result)
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		for next < len(script) && script[next].Step <= i {
			cmd := script[next].Command
			if err := r.w.Apply(cmd); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("step %d %s: %w", i, cmd, err))
				r.logger.Warn("scripted command rejected", "step", i, "command", cmd.String(), "err", err)
			}
			next++
		}

		if err := r.w.Tick(); err != nil {
			r.finish(result)
			return result, err
		}
		result.StepsTaken++

		for _, m := range r.metrics {
			m.Observe(r.w)
		}
		for _, o := range r.observers {
			o.OnStep(r.w, i)
		}
		if cfg.SampleEvery > 0 && (i+1)%cfg.SampleEvery == 0 {
			r.sample(result)
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (r *Runner) sample(result *Result) {
	w := r.w
	p := w.Momentum()
	row := []float64{
		w.KineticEnergy(),
		w.PotentialEnergy(),
		p.X(),
		p.Y(),
		float64(w.Collisions()),
		float64(w.ParticleCount()),
		float64(w.EmitterCount()),
		0,
		0,
		w.PendulumEnergy(),
	}
	if pv, ok := w.Pendulum(); ok {
		row[7], row[8] = pv.Theta1, pv.Theta2
	}
	result.Times = append(result.Times, w.Time())
	result.Samples = append(result.Samples, row)
}
