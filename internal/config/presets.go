package config

import (
	"math"
	"sort"
)

// Presets hold per-mode adjustments applied on top of a base config.
var Presets = map[string]map[string]func(c *Config){
	"pendulum": {
		"symmetric": func(c *Config) {
			c.Pendulum.Theta1, c.Pendulum.Theta2 = math.Pi/2, math.Pi/2
			c.Duration = 30
		},
		"chaos": func(c *Config) {
			c.Pendulum.Theta1, c.Pendulum.Theta2 = 3.0, 3.0
			c.Duration = 60
		},
		"gentle": func(c *Config) {
			c.Pendulum.Theta1, c.Pendulum.Theta2 = 0.3, 0.3
			c.Duration = 30
		},
		"heavy_lower": func(c *Config) {
			c.Pendulum.Masses = [2]float64{1, 3}
			c.Pendulum.Theta1, c.Pendulum.Theta2 = 2.0, 0.5
		},
	},
	"balls": {
		"bouncy": func(c *Config) {
			c.WallRestitution = 0.95
			c.FrictionFactor = 0.99
		},
		"elastic": func(c *Config) {
			c.Gravity = 0
			c.WallRestitution = 1
			c.BallCount = 12
			c.Balls.MinRadius, c.Balls.MaxRadius = 15, 25
		},
		"crowd": func(c *Config) {
			c.BallCount = 30
			c.Balls.MinRadius, c.Balls.MaxRadius = 10, 20
			c.WallRestitution = 0.8
		},
	},
	"fireworks": {
		"random": func(c *Config) {
			c.Fireworks.Scheduler.Policy = "bernoulli"
			c.Fireworks.Scheduler.Probability = 0.05
			c.Fireworks.ParticleDrag = 0.98
		},
		"show": func(c *Config) {
			c.Fireworks.Scheduler.Policy = "interval"
			c.Fireworks.Scheduler.MinDelay, c.Fireworks.Scheduler.MaxDelay = 0.5, 2.0
		},
		"manual": func(c *Config) {
			c.Fireworks.Scheduler.Policy = "manual"
		},
	},
	"all": {
		"demo": func(c *Config) {},
	},
}

// GetPreset returns the preset applied to the defaults, or nil.
func GetPreset(mode, name string) *Config {
	cfg := DefaultConfig()
	if !ApplyPreset(cfg, mode, name) {
		return nil
	}
	return cfg
}

// ApplyPreset sets cfg's mode and applies the named preset's adjustments,
// leaving every other field as it was. It reports whether the preset exists.
func ApplyPreset(cfg *Config, mode, name string) bool {
	mod, ok := Presets[mode][name]
	if !ok {
		return false
	}
	cfg.Mode = mode
	mod(cfg)
	return true
}

func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
