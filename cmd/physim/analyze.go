package main

import (
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physim/internal/analysis"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/export"
	"github.com/san-kum/physim/internal/integrators"
	"github.com/san-kum/physim/internal/physics"
	"github.com/san-kum/physim/internal/storage"
)

var (
	theta1, theta2 float64
	integrateTime  float64
	lyapEps        float64
	xAxis, yAxis   int
	svgOut         string
)

func pendulumFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&theta1, "theta1", 0, "upper arm angle (default from config)")
	f.Float64Var(&theta2, "theta2", 0, "lower arm angle (default from config)")
	f.Float64Var(&integrateTime, "time", 20, "integration time in seconds")
}

// pendulumSetup builds the oscillator's system and start state from the
// config, with --theta1/--theta2 overriding the configured angles.
func pendulumSetup(cmd *cobra.Command) (*physics.DoublePendulum, dynamo.Integrator, dynamo.State, *config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		cfg = loaded
	}
	p := cfg.Pendulum
	dp := &physics.DoublePendulum{M1: p.Masses[0], M2: p.Masses[1], L1: p.Lengths[0], L2: p.Lengths[1], Gravity: p.Gravity}
	if err := dp.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}
	integ, err := integrators.New(p.Integrator)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	t1, t2 := p.Theta1, p.Theta2
	if cmd.Flags().Changed("theta1") {
		t1 = theta1
	}
	if cmd.Flags().Changed("theta2") {
		t2 = theta2
	}
	return dp, integ, dp.StateAt(t1, t2), cfg, nil
}

func newLyapunovCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the pendulum's largest Lyapunov exponent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dp, integ, x0, cfg, err := pendulumSetup(cmd)
			if err != nil {
				return err
			}
			lambda := analysis.LyapunovExponent(dp, integ, x0, cfg.Pendulum.Dt, integrateTime, lyapEps)
			fmt.Printf("theta1=%.4f theta2=%.4f  lambda=%.4f /s\n", x0[0], x0[1], lambda)
			if lambda > 0.05 {
				fmt.Println("chaotic")
			} else {
				fmt.Println("regular")
			}
			return nil
		},
	}
	pendulumFlags(cmd)
	cmd.Flags().Float64Var(&lyapEps, "eps", 1e-8, "initial separation")
	return cmd
}

func newPhaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of the pendulum, or of two columns of a stored run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var portrait *analysis.Portrait
			if len(args) == 1 {
				samples, _, err := storage.New(dataDir).LoadSamples(args[0])
				if err != nil {
					return err
				}
				portrait = &analysis.Portrait{XIndex: xAxis, YIndex: yAxis}
				for _, s := range samples {
					if xAxis < len(s) && yAxis < len(s) {
						portrait.Points = append(portrait.Points, analysis.Point{X: s[xAxis], Y: s[yAxis]})
					}
				}
			} else {
				dp, integ, x0, cfg, err := pendulumSetup(cmd)
				if err != nil {
					return err
				}
				portrait = analysis.GeneratePortrait(dp, integ, x0, xAxis, yAxis, cfg.Pendulum.Dt, integrateTime)
				if portrait == nil {
					return fmt.Errorf("axis out of range for state dimension %d", dp.StateDim())
				}
			}
			fmt.Print(portrait.ToASCII(80, 24))
			if svgOut != "" {
				if err := os.WriteFile(svgOut, []byte(export.TrajectoryToSVG(portrait.Points, 800, 600, "#00ffff")), 0644); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", svgOut)
			}
			return nil
		},
	}
	pendulumFlags(cmd)
	cmd.Flags().IntVar(&xAxis, "x-axis", 0, "state or column index for x")
	cmd.Flags().IntVar(&yAxis, "y-axis", 2, "state or column index for y")
	cmd.Flags().StringVar(&svgOut, "svg", "", "also write the portrait as svg")
	return cmd
}

var spectrumColumn string

func newSpectrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "frequency analysis of one column of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := storage.New(dataDir).Export(args[0])
			if err != nil {
				return err
			}
			idx := -1
			for i, c := range data.Columns {
				if c == spectrumColumn {
					idx = i
				}
			}
			if idx < 0 {
				return fmt.Errorf("unknown column %s (have %v)", spectrumColumn, data.Columns)
			}
			if len(data.Times) < 4 {
				return fmt.Errorf("need at least 4 samples, have %d", len(data.Times))
			}
			series := make([]float64, len(data.Samples))
			for i, s := range data.Samples {
				series[i] = s[idx]
			}
			dt := data.Times[1] - data.Times[0]
			ps := analysis.PowerSpectrum(series)
			fmt.Println(asciigraph.Plot(ps[1:], asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(spectrumColumn+" spectrum")))
			fmt.Printf("\ndominant frequency: %.4f Hz\n", analysis.DominantFrequency(series, dt))
			return nil
		},
	}
	cmd.Flags().StringVar(&spectrumColumn, "column", "theta1", "column to analyze")
	return cmd
}

var (
	bifParam            string
	bifMin, bifMax      float64
	bifSteps            int
	bifTransient, bifRe float64
)

func newBifurcationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "theta2 at upward theta1 zero crossings as a pendulum parameter varies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dp, integ, x0, cfg, err := pendulumSetup(cmd)
			if err != nil {
				return err
			}
			pts, err := analysis.BifurcationDiagram(dp, integ, bifParam, bifMin, bifMax, bifSteps, 0, 1, x0, cfg.Pendulum.Dt, bifTransient, bifRe)
			if err != nil {
				return err
			}
			fmt.Print(analysis.BifurcationToASCII(pts, 80, 24))
			return nil
		},
	}
	pendulumFlags(cmd)
	cmd.Flags().StringVar(&bifParam, "param", "gravity", "m1, m2, l1, l2 or gravity")
	cmd.Flags().Float64Var(&bifMin, "min", 5, "first value")
	cmd.Flags().Float64Var(&bifMax, "max", 15, "last value")
	cmd.Flags().IntVar(&bifSteps, "steps", 40, "number of values")
	cmd.Flags().Float64Var(&bifTransient, "transient", 5, "seconds discarded per value")
	cmd.Flags().Float64Var(&bifRe, "record", 20, "seconds recorded per value")
	return cmd
}
