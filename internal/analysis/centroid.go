package analysis

import (
	"github.com/san-kum/stablefluid/internal/field"
	"github.com/san-kum/stablefluid/internal/sim"
)

type Point struct {
	Tick int
	X, Y float64
}

// Centroid returns the density-weighted centre of r. ok is false when the
// grid holds no positive mass.
func Centroid(r field.Reader) (x, y float64, ok bool) {
	var mass, mx, my float64
	for j := 0; j < r.Height(); j++ {
		for i := 0; i < r.Width(); i++ {
			d := r.At(i, j)
			if d <= 0 {
				continue
			}
			mass += d
			mx += d * float64(i)
			my += d * float64(j)
		}
	}
	if mass == 0 {
		return 0, 0, false
	}
	return mx / mass, my / mass, true
}

// CentroidTrack follows the centre of mass through recorded frames,
// skipping empty ones.
func CentroidTrack(frames []sim.Frame) []Point {
	track := make([]Point, 0, len(frames))
	for _, f := range frames {
		x, y, ok := Centroid(field.FromValues(f.W, f.H, f.Density))
		if !ok {
			continue
		}
		track = append(track, Point{Tick: f.Tick, X: x, Y: y})
	}
	return track
}
