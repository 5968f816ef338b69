package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/stablefluid/internal/sim"
)

type ExportFrame struct {
	Tick    int       `json:"tick"`
	Time    float64   `json:"time"`
	Density []float64 `json:"density"`
}

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Series []sim.Sample  `json:"series"`
	Frames []ExportFrame `json:"frames,omitempty"`
}

// ExportJSON writes a run as one indented JSON document. frames may be nil
// to export the series only.
func ExportJSON(w io.Writer, meta RunMetadata, series []sim.Sample, frames []sim.Frame) error {
	data := ExportData{
		Run:    meta,
		Series: series,
		Frames: make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		data.Frames[i] = ExportFrame{Tick: f.Tick, Time: f.Time, Density: f.Density}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteSeriesCSV writes the per-tick series with a header row.
func WriteSeriesCSV(w io.Writer, series []sim.Sample) error {
	if len(series) == 0 {
		_, err := io.WriteString(w, "tick,time,mass,peak,energy,divergence\n")
		return err
	}
	return gocsv.Marshal(series, w)
}
