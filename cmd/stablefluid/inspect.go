package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/stablefluid/internal/analysis"
	"github.com/san-kum/stablefluid/internal/field"
	"github.com/san-kum/stablefluid/internal/render"
	"github.com/san-kum/stablefluid/internal/sim"
	"github.com/san-kum/stablefluid/internal/storage"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tTICKS\tDT\tPROJECT")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.4f\t%v\n",
					run.ID,
					run.Preset,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Width, run.Height,
					run.Ticks,
					run.Dt,
					run.Project,
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	var metric string
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, series, err := loadSeries(args[0])
			if err != nil {
				return err
			}

			names := sim.SeriesNames
			if metric != "" {
				names = []string{metric}
			}

			fmt.Printf("run: %s\n", meta.ID)
			fmt.Printf("samples: %d\n\n", len(series))
			for _, name := range names {
				data, err := sim.Column(series, name)
				if err != nil {
					return err
				}
				fmt.Println(asciigraph.Plot(data,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(name+" vs tick"),
				))
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metric, "metric", "", "series to plot (default all)")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the last recorded frame as ASCII",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := lastFrame(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("tick %d  t=%.3f\n", frame.Tick, frame.Time)
			fmt.Print(render.ASCII(frameGrid(frame)))
			return nil
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var metric string
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum, statistics and centroid drift of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, series, err := loadSeries(args[0])
			if err != nil {
				return err
			}
			data, err := sim.Column(series, metric)
			if err != nil {
				return err
			}

			fmt.Printf("analysis: %s (%s)\n\n", meta.ID, metric)

			st := analysis.Describe(data)
			fmt.Printf("mean %.6g  std %.6g  min %.6g  max %.6g  n %d\n\n", st.Mean, st.Std, st.Min, st.Max, st.N)

			if ps := analysis.PowerSpectrum(data); len(ps) > 1 {
				fmt.Println(asciigraph.Plot(ps,
					asciigraph.Height(15),
					asciigraph.Width(80),
					asciigraph.Caption("power spectrum ("+metric+")"),
				))
				fmt.Println()
			}

			freq, mag := analysis.DominantFrequency(data, 1/meta.Dt)
			fmt.Printf("dominant frequency: %.3f hz (magnitude %.4g)\n", freq, mag)
			if freq > 0 {
				fmt.Printf("period: %.3f s\n", 1/freq)
			}

			frames, err := storage.New(dataDir).LoadFrames(args[0])
			if err != nil {
				return err
			}
			track := analysis.CentroidTrack(frames)
			if len(track) >= 2 {
				first, last := track[0], track[len(track)-1]
				fmt.Printf("centroid: (%.2f, %.2f) at tick %d -> (%.2f, %.2f) at tick %d\n",
					first.X, first.Y, first.Tick, last.X, last.Y, last.Tick)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metric, "metric", "mass", "series to analyze")
	return cmd
}

func loadSeries(runID string) (*storage.RunMetadata, []sim.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(series) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, series, nil
}

func lastFrame(runID string) (sim.Frame, error) {
	frames, err := storage.New(dataDir).LoadFrames(runID)
	if err != nil {
		return sim.Frame{}, err
	}
	if len(frames) == 0 {
		return sim.Frame{}, fmt.Errorf("run %s has no recorded frames", runID)
	}
	return frames[len(frames)-1], nil
}

func frameGrid(f sim.Frame) *field.Grid {
	return field.FromValues(f.W, f.H, f.Density)
}
