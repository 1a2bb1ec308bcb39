package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/physim/internal/export"
	"github.com/san-kum/physim/internal/viz"
	"github.com/san-kum/physim/internal/world"
)

var (
	theme     string
	snapSteps int
	snapOut   string
)

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "run a world in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			w, err := world.New(cfg, world.WithLogger(logger))
			if err != nil {
				return err
			}
			viz.SetTheme(theme)
			return viz.Run(w)
		},
	}
	worldFlags(cmd)
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	return cmd
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunMenu(cfg.Seed, logger)
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "step a world and write the final frame as svg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			w, err := world.New(cfg, world.WithLogger(logger))
			if err != nil {
				return err
			}
			steps := snapSteps
			if steps < 0 {
				steps = cfg.Steps()
			}
			for i := 0; i < steps; i++ {
				if err := w.Tick(); err != nil {
					return err
				}
			}
			svg := export.NewSVG()
			w.Render(svg)
			if snapOut == "" || snapOut == "-" {
				_, err := svg.WriteTo(os.Stdout)
				return err
			}
			f, err := os.Create(snapOut)
			if err != nil {
				return err
			}
			defer f.Close()
			if _, err := svg.WriteTo(f); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %s after %d steps\n", snapOut, steps)
			return nil
		},
	}
	worldFlags(cmd)
	cmd.Flags().IntVar(&snapSteps, "steps", -1, "steps before the snapshot (-1 runs the full duration)")
	cmd.Flags().StringVarP(&snapOut, "out", "o", "", "output file (stdout when empty)")
	return cmd
}
