package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/experiment"
	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/world"
)

// Scenario is a scripted run: a base config plus timed commands.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Mode        string  `yaml:"mode"`
	Preset      string  `yaml:"preset"`
	Seed        *int64  `yaml:"seed"`
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
	Events      []Event `yaml:"events"`
}

// Event fires a world command either at a step index or at a time in
// seconds (At). Step wins when both are set.
type Event struct {
	Step    *int    `yaml:"step"`
	At      float64 `yaml:"at"`
	Command string  `yaml:"command"`
	Theta1  float64 `yaml:"theta1"`
	Theta2  float64 `yaml:"theta2"`
	X       float64 `yaml:"x"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Mode == "" {
		sc.Mode = "all"
	}
	return &sc, nil
}

// Config resolves the scenario's base configuration.
func (s *Scenario) Config() (*config.Config, error) {
	var cfg *config.Config
	if s.Preset != "" {
		cfg = config.GetPreset(s.Mode, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s/%s", s.Mode, s.Preset)
		}
	} else {
		cfg = config.DefaultConfig()
		cfg.Mode = s.Mode
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Script converts events into step-indexed world commands.
func (s *Scenario) Script(dt float64) ([]experiment.Scripted, error) {
	out := make([]experiment.Scripted, 0, len(s.Events))
	for i, ev := range s.Events {
		kind, err := world.ParseCommandKind(ev.Command)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		step := int(math.Round(ev.At / dt))
		if ev.Step != nil {
			step = *ev.Step
		}
		if step < 0 {
			return nil, fmt.Errorf("event %d: negative step %d", i+1, step)
		}
		out = append(out, experiment.Scripted{
			Step: step,
			Command: world.Command{
				Kind:   kind,
				Theta1: ev.Theta1,
				Theta2: ev.Theta2,
				X:      ev.X,
			},
		})
	}
	return out, nil
}

// RunScenario builds the world and plays the scenario through it.
func RunScenario(ctx context.Context, sc *Scenario, logger *slog.Logger) (*experiment.Result, *config.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := sc.Config()
	if err != nil {
		return nil, nil, err
	}
	script, err := sc.Script(cfg.Dt)
	if err != nil {
		return nil, nil, err
	}
	w, err := world.New(cfg, world.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	logger.Info("running scenario", "name", sc.Name, "mode", cfg.Mode, "steps", cfg.Steps(), "events", len(script))
	r := experiment.NewRunner(w, metrics.Defaults()...)
	r.SetLogger(logger)
	res, err := r.Run(ctx, experiment.Config{
		Steps:       cfg.Steps(),
		SampleEvery: sc.SampleEvery,
		Script:      script,
	})
	return res, cfg, err
}
