package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/stablefluid/internal/fluid"
	"github.com/san-kum/stablefluid/internal/metrics"
)

// Source injects into the fluid before each step.
type Source interface {
	Apply(f *fluid.Fluid, tick int)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(f *fluid.Fluid, tick int)

func (fn SourceFunc) Apply(f *fluid.Fluid, tick int) { fn(f, tick) }

// Metric folds the per-tick summary into a single run value.
type Metric interface {
	Name() string
	Observe(s metrics.Summary, tick int)
	Value() float64
	Reset()
}

// Observer is notified after every step. It must not retain f.
type Observer interface {
	OnTick(f *fluid.Fluid, tick int, t float64)
}

type Config struct {
	Dt    float64
	Ticks int
	// FrameEvery records a density frame every n ticks, plus the initial
	// state. Zero records none.
	FrameEvery    int
	ValidateState bool
}

// Frame is a copy of the density grid at one tick.
type Frame struct {
	Tick    int
	Time    float64
	W, H    int
	Density []float64
}

// Sample is one row of the per-tick series.
type Sample struct {
	Tick       int     `csv:"tick" json:"tick"`
	Time       float64 `csv:"time" json:"time"`
	Mass       float64 `csv:"mass" json:"mass"`
	Peak       float64 `csv:"peak" json:"peak"`
	Energy     float64 `csv:"energy" json:"energy"`
	Divergence float64 `csv:"divergence" json:"divergence"`
}

// Field returns the named series column. ok is false for unknown names.
func (s Sample) Field(name string) (v float64, ok bool) {
	switch name {
	case "mass":
		return s.Mass, true
	case "peak":
		return s.Peak, true
	case "energy":
		return s.Energy, true
	case "divergence":
		return s.Divergence, true
	}
	return 0, false
}

// SeriesNames lists the columns accepted by Sample.Field.
var SeriesNames = []string{"mass", "peak", "energy", "divergence"}

// Column extracts one named column from a series.
func Column(series []Sample, name string) ([]float64, error) {
	out := make([]float64, len(series))
	for i, s := range series {
		v, ok := s.Field(name)
		if !ok {
			return nil, fmt.Errorf("unknown series %q (want one of %v)", name, SeriesNames)
		}
		out[i] = v
	}
	return out, nil
}

type Result struct {
	Frames  []Frame
	Series  []Sample
	Metrics map[string]float64
	Ticks   int
	Elapsed time.Duration
}

// LastFrame returns the most recent frame, or false if none were recorded.
func (r *Result) LastFrame() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}
