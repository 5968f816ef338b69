// Package field provides fixed-size 2D scalar grids used by the fluid solver.
//
// A [Grid] stores W×H float64 values in a single row-major slice. Cell
// (x, y) lives at index x + y*W, so a sweep that walks x in the inner loop
// touches memory sequentially.
//
// Cells with x in [1, W-2] and y in [1, H-2] are interior cells. The
// outermost row and column form the boundary.
package field

import "math"

// Reader is read-only access to a grid. Renderers and metrics take a Reader
// so they cannot mutate solver state.
type Reader interface {
	Width() int
	Height() int
	At(x, y int) float64
}

type Grid struct {
	w, h  int
	cells []float64
}

// New returns a zeroed w×h grid.
func New(w, h int) *Grid {
	return &Grid{w: w, h: h, cells: make([]float64, w*h)}
}

// FromValues wraps vals as a w×h grid. vals must have length w*h and is
// not copied.
func FromValues(w, h int, vals []float64) *Grid {
	return &Grid{w: w, h: h, cells: vals}
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

// Index returns the flat offset of cell (x, y).
func (g *Grid) Index(x, y int) int { return x + y*g.w }

func (g *Grid) At(x, y int) float64     { return g.cells[x+y*g.w] }
func (g *Grid) Set(x, y int, v float64) { g.cells[x+y*g.w] = v }
func (g *Grid) Add(x, y int, v float64) { g.cells[x+y*g.w] += v }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Values exposes the backing slice.
func (g *Grid) Values() []float64 { return g.cells }

func (g *Grid) Fill(v float64) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// CopyFrom overwrites every cell with the matching cell of src. Both grids
// must share dimensions.
func (g *Grid) CopyFrom(src *Grid) {
	copy(g.cells, src.cells)
}

func (g *Grid) Clone() *Grid {
	c := New(g.w, g.h)
	copy(c.cells, g.cells)
	return c
}

// CopyBorder copies only the outermost row and column of src into g.
func (g *Grid) CopyBorder(src *Grid) {
	w, h := g.w, g.h
	for x := 0; x < w; x++ {
		g.cells[x] = src.cells[x]
		g.cells[x+(h-1)*w] = src.cells[x+(h-1)*w]
	}
	for y := 1; y < h-1; y++ {
		g.cells[y*w] = src.cells[y*w]
		g.cells[w-1+y*w] = src.cells[w-1+y*w]
	}
}

func (g *Grid) Sum() float64 {
	s := 0.0
	for _, v := range g.cells {
		s += v
	}
	return s
}

// Max returns the largest value and the cell holding it. Ties resolve to
// the lowest index.
func (g *Grid) Max() (v float64, x, y int) {
	best := 0
	for i, c := range g.cells {
		if c > g.cells[best] {
			best = i
		}
	}
	return g.cells[best], best % g.w, best / g.w
}

// Finite reports whether every cell is neither NaN nor ±Inf.
func (g *Grid) Finite() bool {
	for _, v := range g.cells {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Equal reports whether both grids have the same shape and bit-identical
// values.
func (g *Grid) Equal(o *Grid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i, v := range g.cells {
		if math.Float64bits(v) != math.Float64bits(o.cells[i]) {
			return false
		}
	}
	return true
}
