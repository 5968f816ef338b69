package fluid

import "github.com/san-kum/stablefluid/internal/field"

type Fluid struct {
	params Params
	w, h   int

	density, densityPrev *field.Grid
	u, uPrev, uNext      *field.Grid
	v, vPrev, vNext      *field.Grid

	// projection scratch
	div, pressure *field.Grid
}

// New builds a zeroed solver. Zero iteration counts take DefaultIterations.
func New(p Params) (*Fluid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = p.withDefaults()
	w, h := p.Width, p.Height

	return &Fluid{
		params:      p,
		w:           w,
		h:           h,
		density:     field.New(w, h),
		densityPrev: field.New(w, h),
		u:           field.New(w, h),
		uPrev:       field.New(w, h),
		uNext:       field.New(w, h),
		v:           field.New(w, h),
		vPrev:       field.New(w, h),
		vNext:       field.New(w, h),
		div:         field.New(w, h),
		pressure:    field.New(w, h),
	}, nil
}

func (f *Fluid) Width() int  { return f.w }
func (f *Fluid) Height() int { return f.h }

// Params returns the effective parameters, defaults applied.
func (f *Fluid) Params() Params { return f.params }

// SetProjection toggles the projection stage for subsequent steps.
func (f *Fluid) SetProjection(on bool) { f.params.Project = on }

// AddDensity adds amount to the density at (x, y). The caller guarantees
// 0 <= x < Width and 0 <= y < Height.
func (f *Fluid) AddDensity(x, y int, amount float64) {
	f.check("AddDensity", x, y)
	f.density.Add(x, y, amount)
}

// AddVelocity adds (dx, dy) to the velocity at (x, y). Same precondition
// as AddDensity.
func (f *Fluid) AddVelocity(x, y int, dx, dy float64) {
	f.check("AddVelocity", x, y)
	f.u.Add(x, y, dx)
	f.v.Add(x, y, dy)
}

func (f *Fluid) check(op string, x, y int) {
	if f.params.Checked && !f.density.InBounds(x, y) {
		panic(&IndexError{Op: op, X: x, Y: y, W: f.w, H: f.h})
	}
}

// Density is the current density grid. The view stays valid across steps.
func (f *Fluid) Density() field.Reader { return gridView{&f.density} }

func (f *Fluid) VelocityX() field.Reader { return gridView{&f.u} }
func (f *Fluid) VelocityY() field.Reader { return gridView{&f.v} }

// DensityValues copies the density grid into dst, growing it if needed,
// and returns it.
func (f *Fluid) DensityValues(dst []float64) []float64 {
	return copyInto(dst, f.density)
}

// VelocityValues copies both velocity components the same way.
func (f *Fluid) VelocityValues(du, dv []float64) ([]float64, []float64) {
	return copyInto(du, f.u), copyInto(dv, f.v)
}

func copyInto(dst []float64, g *field.Grid) []float64 {
	n := len(g.Values())
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	copy(dst, g.Values())
	return dst
}

// Valid reports whether density and velocity are all finite.
func (f *Fluid) Valid() bool {
	return f.density.Finite() && f.u.Finite() && f.v.Finite()
}

// Reset zeroes every field.
func (f *Fluid) Reset() {
	for _, g := range []*field.Grid{
		f.density, f.densityPrev,
		f.u, f.uPrev, f.uNext,
		f.v, f.vPrev, f.vNext,
		f.div, f.pressure,
	} {
		g.Fill(0)
	}
}

// Step advances the simulation by dt.
func (f *Fluid) Step(dt float64) {
	p := f.params

	f.uPrev.CopyFrom(f.u)
	f.vPrev.CopyFrom(f.v)
	f.densityPrev.CopyFrom(f.density)

	diffuse(f.u, f.uPrev, p.Viscosity, dt, p.Iterations)
	diffuse(f.v, f.vPrev, p.Viscosity, dt, p.Iterations)

	// Velocity self-advects along its pre-diffusion snapshot. The diffused
	// field is the sample source, so the result lands in the spare grids
	// and is swapped in afterwards.
	f.uNext.CopyBorder(f.u)
	f.vNext.CopyBorder(f.v)
	advect(f.uNext, f.u, f.uPrev, f.vPrev, dt)
	advect(f.vNext, f.v, f.uPrev, f.vPrev, dt)
	f.u, f.uNext = f.uNext, f.u
	f.v, f.vNext = f.vNext, f.v

	if p.Project {
		for i := 0; i < p.ProjectPasses; i++ {
			project(f.u, f.v, f.div, f.pressure, p.PressureIterations)
		}
	}

	diffuse(f.density, f.densityPrev, p.Diffusion, dt, p.Iterations)

	// After the swap densityPrev holds the diffused field and density holds
	// the pre-step values, whose border matches.
	f.density, f.densityPrev = f.densityPrev, f.density
	advect(f.density, f.densityPrev, f.u, f.v, dt)
}

// gridView reads through a pointer to the solver's grid slot so it tracks
// buffer swaps.
type gridView struct {
	g **field.Grid
}

func (v gridView) Width() int          { return (*v.g).Width() }
func (v gridView) Height() int         { return (*v.g).Height() }
func (v gridView) At(x, y int) float64 { return (*v.g).At(x, y) }
