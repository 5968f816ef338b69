package fluid

import "github.com/san-kum/stablefluid/internal/field"

// relax runs iters Gauss-Seidel sweeps of
//
//	b = (b0 + a*(left + right + down + up)) / c
//
// over the interior of b. Rows are visited in increasing y and cells in
// increasing x, and each update reads neighbours already written in the
// same sweep. Boundary cells of b are read but never written.
func relax(b, b0 *field.Grid, a, c float64, iters int) {
	w, h := b.Width(), b.Height()
	bv, b0v := b.Values(), b0.Values()
	inv := 1.0 / c

	for k := 0; k < iters; k++ {
		for y := 1; y < h-1; y++ {
			row := y * w
			for x := 1; x < w-1; x++ {
				i := row + x
				bv[i] = (b0v[i] + a*(bv[i-1]+bv[i+1]+bv[i-w]+bv[i+w])) * inv
			}
		}
	}
}
