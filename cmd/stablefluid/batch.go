package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/stablefluid/internal/automation"
	"github.com/san-kum/stablefluid/internal/optim"
	"github.com/san-kum/stablefluid/internal/storage"
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations from YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, runErr := automation.RunScenario(ctx, sc)

			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}
			for _, r := range results {
				meta := metadataFor(r.Step.Preset, r.Config, r.Config.Seed)
				meta.ID = r.Step.SaveAs
				id, err := st.Save(meta, r.Result)
				if err != nil {
					return err
				}
				fmt.Printf("saved %s (%d ticks)\n", id, r.Result.Ticks)
			}
			return runErr
		},
	}
}

func newSweepCmd() *cobra.Command {
	var (
		flags  simFlags
		param  string
		lo, hi float64
		steps  int
	)
	cmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "vary one parameter and tabulate the metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, presetArg(args))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
				Base: cfg, Param: param, Min: lo, Max: hi, NumSteps: steps,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tSTABLE\tMASS\tPEAK\tENERGY\tDIVERGENCE\n", param)
			for _, r := range results {
				m := r.Metrics
				fmt.Fprintf(w, "%.6g\t%v\t%.4f\t%.4f\t%.4g\t%.4g\n",
					r.Value, r.Stable, m["mass"], m["peak"], m["kinetic_energy"], m["divergence"])
			}
			if err := w.Flush(); err != nil {
				return err
			}
			stable, unstable := automation.SweepStats(results)
			fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&param, "param", "viscosity", "parameter to vary")
	cmd.Flags().Float64Var(&lo, "min", 0, "first value")
	cmd.Flags().Float64Var(&hi, "max", 0.01, "last value")
	cmd.Flags().IntVar(&steps, "steps", 5, "number of values")
	return cmd
}

func newTuneCmd() *cobra.Command {
	var (
		flags  simFlags
		metric string
		grid   map[string]string
	)
	cmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid-search parameters for the smallest metric value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, presetArg(args))
			if err != nil {
				return err
			}
			names, ranges, err := parseGrid(grid)
			if err != nil {
				return err
			}
			gs, err := optim.NewGridSearch(names, ranges)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			best, val, err := gs.Search(ctx, optim.ConfigEvaluator(cfg), metric)
			if err != nil {
				return err
			}
			fmt.Printf("best %s: %.6g\n", metric, val)
			for _, name := range names {
				fmt.Printf("  %s: %g\n", name, best[name])
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&metric, "metric", "divergence", "metric to minimise")
	cmd.Flags().StringToStringVar(&grid, "grid", map[string]string{"viscosity": "0:0.001:0.01"},
		"parameter values as name=v1:v2:..., repeatable")
	return cmd
}

// parseGrid turns name=v1:v2:... pairs into sorted names and value lists.
func parseGrid(grid map[string]string) ([]string, [][]float64, error) {
	if len(grid) == 0 {
		return nil, nil, fmt.Errorf("no parameters to search")
	}
	names := make([]string, 0, len(grid))
	for name := range grid {
		names = append(names, name)
	}
	sort.Strings(names)

	ranges := make([][]float64, len(names))
	for i, name := range names {
		vals, err := parseValues(grid[name])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		ranges[i] = vals
	}
	return names, ranges, nil
}
