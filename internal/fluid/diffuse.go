package fluid

import "github.com/san-kum/stablefluid/internal/field"

// diffuse implicitly spreads in toward neighbourhood averages and writes
// the result into out. out is also the relaxation's starting guess.
// Scaling by the interior extent keeps the strength independent of
// resolution.
func diffuse(out, in *field.Grid, rate, dt float64, iters int) {
	a := dt * rate * float64(out.Width()-2) * float64(out.Height()-2)
	relax(out, in, a, 1+4*a, iters)
}
