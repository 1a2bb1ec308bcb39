package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"sort"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/experiment"
	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/world"
)

var sweepable = map[string]func(c *config.Config, v float64){
	"gravity":             func(c *config.Config, v float64) { c.Gravity = v },
	"wall_restitution":    func(c *config.Config, v float64) { c.WallRestitution = v },
	"friction_factor":     func(c *config.Config, v float64) { c.FrictionFactor = v },
	"particle_drag":       func(c *config.Config, v float64) { c.Fireworks.ParticleDrag = v },
	"explode_probability": func(c *config.Config, v float64) { c.Fireworks.ExplodeProbability = v },
	"pendulum.theta1":     func(c *config.Config, v float64) { c.Pendulum.Theta1 = v },
	"pendulum.theta2":     func(c *config.Config, v float64) { c.Pendulum.Theta2 = v },
	"pendulum.gravity":    func(c *config.Config, v float64) { c.Pendulum.Gravity = v },
	"pendulum.dt":         func(c *config.Config, v float64) { c.Pendulum.Dt = v },
}

// SweepParams lists the parameter names a sweep accepts.
func SweepParams() []string {
	names := make([]string, 0, len(sweepable))
	for k := range sweepable {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Final      []float64
}

// RunSweep runs one world per evenly spaced parameter value.
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	set, ok := sweepable[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("parameter %s cannot be swept", sweep.ParamName)
	}
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", sweep.NumSteps)
	}

	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := 0; i < sweep.NumSteps; i++ {
		v := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		set(cfg, v)
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}

		res, err := runOnce(ctx, cfg, logger)
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{ParamValue: v, Metrics: res.Metrics, Final: res.Last()})
		logger.Info("sweep point", "index", i+1, "of", sweep.NumSteps, "param", sweep.ParamName, "value", v)
	}
	return results, nil
}

type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

type MonteCarloResult struct {
	TrialID int
	Theta1  float64
	Theta2  float64
	Final   []float64
	Stable  bool
}

// RunMonteCarlo perturbs the pendulum's initial angles uniformly within
// ±Perturbation and records whether each run's pendulum stayed finite.
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, logger *slog.Logger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !mc.Base.HasPendulum() {
		return nil, fmt.Errorf("monte carlo needs a pendulum, mode is %s", mc.Base.Mode)
	}
	rng := rand.New(rand.NewSource(mc.Seed))
	results := make([]MonteCarloResult, 0, mc.NumTrials)

	for trial := 0; trial < mc.NumTrials; trial++ {
		cfg := mc.Base.Clone()
		cfg.Pendulum.Theta1 += (rng.Float64() - 0.5) * 2 * mc.Perturbation
		cfg.Pendulum.Theta2 += (rng.Float64() - 0.5) * 2 * mc.Perturbation

		res, err := runOnce(ctx, cfg, logger)
		if err != nil {
			return results, err
		}
		final := res.Last()
		stable := pendulumFinite(final)
		results = append(results, MonteCarloResult{
			TrialID: trial,
			Theta1:  cfg.Pendulum.Theta1,
			Theta2:  cfg.Pendulum.Theta2,
			Final:   final,
			Stable:  stable,
		})

		if (trial+1)%10 == 0 {
			logger.Info("monte carlo progress", "done", trial+1, "of", mc.NumTrials)
		}
	}
	return results, nil
}

// stabilityColumns are the pendulum samples a trial is judged on. Ball and
// firework columns may grow large without saying anything about the pendulum.
var stabilityColumns = []string{"theta1", "theta2", "pendulum_energy"}

func pendulumFinite(row []float64) bool {
	for _, name := range stabilityColumns {
		i := slices.Index(experiment.Columns, name)
		if i < 0 || i >= len(row) {
			return false
		}
		if math.IsNaN(row[i]) || math.IsInf(row[i], 0) {
			return false
		}
	}
	return true
}

// Summary describes one sampled column across trials.
type Summary struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

type MonteCarloSummary struct {
	Stable   int
	Unstable int
	// Columns holds final-value statistics over the stable trials.
	Columns map[string]Summary
}

// MonteCarloStats counts stable trials and summarises each final column
// over them.
func MonteCarloStats(results []MonteCarloResult) MonteCarloSummary {
	sum := MonteCarloSummary{Columns: make(map[string]Summary)}
	var stable [][]float64
	for _, r := range results {
		if r.Stable {
			sum.Stable++
			stable = append(stable, r.Final)
		} else {
			sum.Unstable++
		}
	}
	if len(stable) == 0 {
		return sum
	}
	for i, name := range experiment.Columns {
		s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
		n := 0
		for _, row := range stable {
			if i >= len(row) {
				continue
			}
			v := row[i]
			s.Mean += v
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
			n++
		}
		if n == 0 {
			continue
		}
		s.Mean /= float64(n)
		for _, row := range stable {
			if i < len(row) {
				d := row[i] - s.Mean
				s.Std += d * d
			}
		}
		s.Std = math.Sqrt(s.Std / float64(n))
		sum.Columns[name] = s
	}
	return sum
}

func runOnce(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*experiment.Result, error) {
	w, err := world.New(cfg, world.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	steps := cfg.Steps()
	sampleEvery := max(steps, 1)
	return experiment.NewRunner(w, metrics.Defaults()...).Run(ctx, experiment.Config{
		Steps:       steps,
		SampleEvery: sampleEvery,
	})
}
