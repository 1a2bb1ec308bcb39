package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/physim/internal/automation"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/experiment"
	"github.com/san-kum/physim/internal/metrics"
	"github.com/san-kum/physim/internal/storage"
	"github.com/san-kum/physim/internal/world"
)

var (
	sampleEvery int
	noSave      bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a world headlessly and store the samples",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	worldFlags(cmd)
	cmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "steps between samples")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	return cmd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, err := world.New(cfg, world.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s for %.2fs (%d steps)...\n", cfg.Mode, cfg.Duration, cfg.Steps())
	start := time.Now()
	r := experiment.NewRunner(w, metrics.Defaults()...)
	r.SetLogger(logger)
	result, err := r.Run(ctx, experiment.Config{Steps: cfg.Steps(), SampleEvery: sampleEvery})
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	return report(cfg, result)
}

func report(cfg *config.Config, result *experiment.Result) error {
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("steps: %d\n", result.StepsTaken)
	printMetrics(result.Metrics)
	for _, err := range result.Errors {
		fmt.Printf("rejected: %v\n", err)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a yaml command script against a world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			result, cfg, err := automation.RunScenario(ctx, sc, logger)
			if err != nil {
				return err
			}
			return report(cfg, result)
		},
	}
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	return cmd
}

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one world per value of a parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
				Base:      cfg,
				ParamName: sweepParam,
				ParamMin:  sweepMin,
				ParamMax:  sweepMax,
				NumSteps:  sweepSteps,
			}, logger)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %-16s %-16s %-12s\n", sweepParam, "kinetic_energy", "energy_drift", "collisions")
			for _, r := range results {
				fmt.Printf("%-12.4g %-16.6g %-16.6g %-12.0f\n",
					r.ParamValue, r.Metrics["kinetic_energy"], r.Metrics["energy_drift"], r.Metrics["collisions"])
			}
			return nil
		},
	}
	worldFlags(cmd)
	cmd.Flags().StringVar(&sweepParam, "param", "wall_restitution", fmt.Sprintf("parameter to sweep %v", automation.SweepParams()))
	cmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	cmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	cmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	return cmd
}

var (
	mcTrials  int
	mcPerturb float64
)

func newMonteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb the pendulum start angles and check the runs stay finite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				mode = "pendulum"
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
				Base:         cfg,
				Perturbation: mcPerturb,
				NumTrials:    mcTrials,
				Seed:         cfg.Seed,
			}, logger)
			if err != nil {
				return err
			}
			sum := automation.MonteCarloStats(results)
			fmt.Printf("trials: %d  stable: %d  unstable: %d\n", len(results), sum.Stable, sum.Unstable)
			if len(sum.Columns) == 0 {
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tMEAN\tSTD\tMIN\tMAX")
			for _, name := range experiment.Columns {
				c, ok := sum.Columns[name]
				if !ok {
					continue
				}
				fmt.Fprintf(tw, "%s\t%.4g\t%.4g\t%.4g\t%.4g\n", name, c.Mean, c.Std, c.Min, c.Max)
			}
			return tw.Flush()
		},
	}
	worldFlags(cmd)
	cmd.Flags().IntVar(&mcTrials, "trials", 20, "number of trials")
	cmd.Flags().Float64Var(&mcPerturb, "perturb", 0.05, "max angle perturbation in radians")
	return cmd
}

var ensembleRuns int

func newEnsembleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the same world under consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			results, err := experiment.NewEnsemble(cfg, ensembleRuns, logger).Run(ctx, experiment.Config{Steps: cfg.Steps()})
			if err != nil {
				return err
			}
			for i, r := range results {
				fmt.Printf("seed %d:", cfg.Seed+int64(i))
				names := make([]string, 0, len(r.Metrics))
				for k := range r.Metrics {
					names = append(names, k)
				}
				sort.Strings(names)
				for _, k := range names {
					fmt.Printf("  %s=%.4g", k, r.Metrics[k])
				}
				fmt.Println()
			}
			return nil
		},
	}
	worldFlags(cmd)
	cmd.Flags().IntVar(&ensembleRuns, "runs", 4, "number of seeds")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [mode]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := config.Modes
			if len(args) == 1 {
				modes = args
			}
			for _, m := range modes {
				presets := config.ListPresets(m)
				if len(presets) == 0 {
					fmt.Printf("no presets for mode: %s\n", m)
					continue
				}
				fmt.Printf("presets for %s:\n", m)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	worldFlags(cmd)
	return cmd
}
