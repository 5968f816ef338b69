package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/stablefluid/internal/config"
	"github.com/san-kum/stablefluid/internal/fluid"
	"github.com/san-kum/stablefluid/internal/sim"
	"github.com/san-kum/stablefluid/internal/storage"
)

func newRunCmd() *cobra.Command {
	var (
		flags    simFlags
		validate bool
		runs     int
	)
	cmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := presetArg(args)
			cfg, err := flags.resolve(cmd, name)
			if err != nil {
				return err
			}
			if runs < 1 {
				return fmt.Errorf("runs must be at least 1, got %d", runs)
			}
			runCfg := sim.ConfigFrom(cfg)
			runCfg.ValidateState = validate
			return runSimulation(cmd.Context(), name, cfg, runCfg, runs)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&validate, "validate", true, "abort when the state stops being finite")
	cmd.Flags().IntVar(&runs, "runs", 1, "independent runs with consecutive seeds")
	return cmd
}

func runSimulation(ctx context.Context, name string, cfg *config.Config, runCfg sim.Config, runs int) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := slog.With("preset", name, "grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height))
	log.Info("running simulation", "ticks", cfg.Ticks, "dt", cfg.Dt, "project", cfg.Projection.Enabled, "runs", runs)

	ens := sim.NewEnsemble(cfg, runs)
	results, err := ens.Run(ctx, runCfg)
	if err != nil {
		return err
	}

	for i, result := range results {
		meta := metadataFor(name, cfg, ens.Seeds()[i])
		runID, err := st.Save(meta, result)
		if err != nil {
			return err
		}
		log.Info("run saved", "id", runID, "elapsed", result.Elapsed, "frames", len(result.Frames))

		fmt.Printf("run id: %s\n", runID)
		fmt.Printf("ticks: %d in %v\n", result.Ticks, result.Elapsed.Round(time.Microsecond))
		printMetrics(result.Metrics)
	}
	return nil
}

func metadataFor(name string, cfg *config.Config, seed int64) storage.RunMetadata {
	return storage.RunMetadata{
		Preset:     name,
		Seed:       seed,
		Width:      cfg.Grid.Width,
		Height:     cfg.Grid.Height,
		Diffusion:  cfg.Diffusion,
		Viscosity:  cfg.Viscosity,
		Project:    cfg.Projection.Enabled,
		Dt:         cfg.Dt,
		FrameEvery: cfg.FrameEvery,
	}
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func newBenchCmd() *cobra.Command {
	var (
		sizes []int
		steps int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "measure steps per second across grid sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("steps must be positive, got %d", steps)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "GRID\tPROJECT\tSTEPS/S\tNS/STEP")
			for _, n := range sizes {
				for _, project := range []bool{false, true} {
					rate, err := benchStep(n, project, steps)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%dx%d\t%v\t%.1f\t%.0f\n", n, n, project, rate, 1e9/rate)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{16, 32, 64, 128}, "square grid sizes")
	cmd.Flags().IntVar(&steps, "steps", 200, "steps per measurement")
	return cmd
}

// benchStep times steps on an n×n grid seeded with a single puff.
func benchStep(n int, project bool, steps int) (float64, error) {
	f, err := fluid.New(fluid.Params{
		Width: n, Height: n,
		Diffusion: config.DefaultDiffusion, Viscosity: config.DefaultViscosity,
		Project: project,
	})
	if err != nil {
		return 0, err
	}
	f.AddDensity(n/2, n/2, 1)
	f.AddVelocity(n/2, n/2, 1, 0)

	start := time.Now()
	for i := 0; i < steps; i++ {
		f.Step(config.DefaultDt)
	}
	elapsed := time.Since(start)
	slog.Debug("bench", "grid", n, "project", project, "elapsed", elapsed)
	return float64(steps) / elapsed.Seconds(), nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tTICKS\tPROJECT\tEMITTERS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%v\t%d\n",
					name, p.Grid.Width, p.Grid.Height, p.Ticks, p.Projection.Enabled, len(p.Emitters))
			}
			return w.Flush()
		},
	}
}
