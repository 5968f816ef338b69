package metrics

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/stablefluid/internal/fluid"
)

// Summary holds the scalar diagnostics of one solver state.
type Summary struct {
	Mass       float64
	Peak       float64
	Energy     float64
	Divergence float64
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("mass", s.Mass),
		slog.Float64("peak", s.Peak),
		slog.Float64("energy", s.Energy),
		slog.Float64("divergence", s.Divergence),
	)
}

// Probe reuses its buffers across measurements. The zero value is ready
// to use.
type Probe struct {
	density, u, v, div []float64
}

// Measure copies the fields out of f and reduces them.
func (p *Probe) Measure(f *fluid.Fluid) Summary {
	p.density = f.DensityValues(p.density)
	p.u, p.v = f.VelocityValues(p.u, p.v)
	p.div = divergence(p.div, f.Width(), f.Height(), p.u, p.v)

	return Summary{
		Mass:       floats.Sum(p.density),
		Peak:       floats.Max(p.density),
		Energy:     kineticEnergy(p.u, p.v),
		Divergence: rms(p.div),
	}
}

// Measure is a one-off Probe.Measure.
func Measure(f *fluid.Fluid) Summary {
	var p Probe
	return p.Measure(f)
}

func kineticEnergy(u, v []float64) float64 {
	return 0.5 * (floats.Dot(u, u) + floats.Dot(v, v))
}

// divergence writes the interior divergence of (u, v) into dst, using the
// same central difference as the projection.
func divergence(dst []float64, w, h int, u, v []float64) []float64 {
	n := (w - 2) * (h - 2)
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:0]
	fw, fh := float64(w), float64(h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := x + y*w
			dst = append(dst, -0.5*((u[i+1]-u[i-1])/fw+(v[i+w]-v[i-w])/fh))
		}
	}
	return dst
}

func rms(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sq := make([]float64, len(vals))
	floats.MulTo(sq, vals, vals)
	return math.Sqrt(stat.Mean(sq, nil))
}
