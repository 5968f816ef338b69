package fluid

import (
	"fmt"
	"math"
)

// DefaultIterations is the relaxation sweep count used when a Params field
// is left at zero.
const DefaultIterations = 20

// Params configures a Fluid. Width, Height and the two rates are fixed for
// the lifetime of the instance.
type Params struct {
	Width, Height int

	// Diffusion spreads density, Viscosity spreads velocity. Both are
	// rates per unit time and must be non-negative.
	Diffusion float64
	Viscosity float64

	// Iterations is the Gauss-Seidel sweep count for diffusion.
	Iterations int

	// Project enables divergence removal after velocity advection.
	Project bool
	// PressureIterations is the sweep count of one pressure solve.
	PressureIterations int
	// ProjectPasses repeats the whole projection this many times per step.
	ProjectPasses int

	// Checked makes injection panic with an *IndexError on out-of-range
	// coordinates instead of relying on the slice bounds check.
	Checked bool
}

// withDefaults fills zero iteration counts.
func (p Params) withDefaults() Params {
	if p.Iterations == 0 {
		p.Iterations = DefaultIterations
	}
	if p.PressureIterations == 0 {
		p.PressureIterations = DefaultIterations
	}
	if p.ProjectPasses == 0 {
		p.ProjectPasses = DefaultIterations
	}
	return p
}

// Validate reports whether p describes a usable solver.
func (p Params) Validate() error {
	if p.Width < 3 || p.Height < 3 {
		return fmt.Errorf("%w: grid must be at least 3x3, got %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	if !nonNegative(p.Diffusion) {
		return fmt.Errorf("%w: diffusion must be finite and non-negative, got %g", ErrInvalidParams, p.Diffusion)
	}
	if !nonNegative(p.Viscosity) {
		return fmt.Errorf("%w: viscosity must be finite and non-negative, got %g", ErrInvalidParams, p.Viscosity)
	}
	if p.Iterations < 0 || p.PressureIterations < 0 || p.ProjectPasses < 0 {
		return fmt.Errorf("%w: iteration counts must not be negative", ErrInvalidParams)
	}
	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
