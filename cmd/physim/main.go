package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/physim/internal/config"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	mode       string
	preset     string
	seed       int64
	duration   float64

	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "physim",
		Short:         "2d physics sandbox: bouncing balls, fireworks and a chaotic pendulum",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
			slog.SetDefault(logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".physim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")

	rootCmd.AddCommand(
		newRunCmd(),
		newLiveCmd(),
		newSnapshotCmd(),
		newScenarioCmd(),
		newSweepCmd(),
		newMonteCarloCmd(),
		newEnsembleCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportJSONCmd(),
		newExportCSVCmd(),
		newLyapunovCmd(),
		newPhaseCmd(),
		newSpectrumCmd(),
		newBifurcationCmd(),
		newPresetsCmd(),
		newInitConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// worldFlags registers the flags every world-building command shares.
func worldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&mode, "mode", "", "all, balls, fireworks or pendulum")
	f.StringVar(&preset, "preset", "", "preset name for the mode")
	f.Int64Var(&seed, "seed", 0, "random seed (0 keeps the configured seed)")
	f.Float64Var(&duration, "time", 0, "duration in seconds (0 keeps the configured duration)")
}

// loadConfig resolves the config in order: defaults, --config file,
// --preset adjustments on top of the file, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	m := cfg.Mode
	if mode != "" {
		m = mode
	}
	cfg.Mode = m
	if preset != "" && !config.ApplyPreset(cfg, m, preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(m))
	}

	if cmd.Flags().Changed("seed") && seed != 0 {
		cfg.Seed = seed
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
