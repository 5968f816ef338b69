package analysis

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Stats struct {
	N    int
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// Describe summarises a series. Std is the sample standard deviation and
// is zero for fewer than two values.
func Describe(data []float64) Stats {
	if len(data) == 0 {
		return Stats{}
	}
	s := Stats{
		N:    len(data),
		Mean: stat.Mean(data, nil),
		Min:  floats.Min(data),
		Max:  floats.Max(data),
	}
	if len(data) > 1 {
		s.Std = stat.StdDev(data, nil)
	}
	return s
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("n", s.N),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
	)
}
