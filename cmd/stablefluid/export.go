package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/stablefluid/internal/field"
	"github.com/san-kum/stablefluid/internal/render"
	"github.com/san-kum/stablefluid/internal/storage"
)

// writeOutput sends write's output to path, or stdout when path is empty.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

func newExportCSVCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := storage.New(dataDir).LoadSeries(args[0])
			if err != nil {
				return err
			}
			return writeOutput(out, func(w io.Writer) error {
				return storage.WriteSeriesCSV(w, series)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	var (
		out        string
		withFrames bool
	)
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			series, err := st.LoadSeries(args[0])
			if err != nil {
				return err
			}
			frames, err := st.LoadFrames(args[0])
			if err != nil {
				return err
			}
			if !withFrames {
				frames = nil
			}
			return writeOutput(out, func(w io.Writer) error {
				return storage.ExportJSON(w, *meta, series, frames)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&withFrames, "frames", true, "include density frames")
	return cmd
}

func newExportPNGCmd() *cobra.Command {
	var (
		out   string
		scale int
	)
	cmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render the last frame as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := lastFrame(args[0])
			if err != nil {
				return err
			}
			return writeOutput(defaultPath(out, args[0], ".png"), func(w io.Writer) error {
				return render.WritePNG(w, frameGrid(frame), scale)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <run_id>.png)")
	cmd.Flags().IntVar(&scale, "scale", 8, "pixels per cell")
	return cmd
}

func newExportSVGCmd() *cobra.Command {
	var (
		out   string
		scale int
	)
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the last frame as an SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := lastFrame(args[0])
			if err != nil {
				return err
			}
			return writeOutput(defaultPath(out, args[0], ".svg"), func(w io.Writer) error {
				return render.WriteSVG(w, frameGrid(frame), scale)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <run_id>.svg)")
	cmd.Flags().IntVar(&scale, "scale", 8, "pixels per cell")
	return cmd
}

func newExportGIFCmd() *cobra.Command {
	var (
		out   string
		scale int
		delay int
	)
	cmd := &cobra.Command{
		Use:   "export-gif [run_id]",
		Short: "animate every recorded frame as a GIF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frames, err := storage.New(dataDir).LoadFrames(args[0])
			if err != nil {
				return err
			}
			if len(frames) == 0 {
				return fmt.Errorf("run %s has no recorded frames", args[0])
			}
			readers := make([]field.Reader, len(frames))
			for i, f := range frames {
				readers[i] = frameGrid(f)
			}
			return writeOutput(defaultPath(out, args[0], ".gif"), func(w io.Writer) error {
				return render.WriteGIF(w, readers, scale, delay)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <run_id>.gif)")
	cmd.Flags().IntVar(&scale, "scale", 4, "pixels per cell")
	cmd.Flags().IntVar(&delay, "delay", 5, "delay between frames in 1/100 s")
	return cmd
}

func defaultPath(out, runID, ext string) string {
	if out != "" {
		return out
	}
	return runID + ext
}
