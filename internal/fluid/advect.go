package fluid

import "github.com/san-kum/stablefluid/internal/field"

// advect transports src along the (tu, tv) field into dst by semi-Lagrangian
// backtrace. The backtraced coordinate is clamped to the interior and
// truncated to a cell; there is no interpolation. dst must not alias src.
func advect(dst, src, tu, tv *field.Grid, dt float64) {
	w, h := dst.Width(), dst.Height()
	dv, sv := dst.Values(), src.Values()
	uv, vv := tu.Values(), tv.Values()

	scaleX := dt * float64(w-2)
	scaleY := dt * float64(h-2)
	maxX, maxY := float64(w-2), float64(h-2)

	for y := 1; y < h-1; y++ {
		row := y * w
		for x := 1; x < w-1; x++ {
			i := row + x
			sx := clamp(float64(x)-scaleX*uv[i], 1, maxX)
			sy := clamp(float64(y)-scaleY*vv[i], 1, maxY)
			dv[i] = sv[int(sx)+int(sy)*w]
		}
	}
}

// clamp bounds v to [lo, hi] before truncation. Truncating and then
// clamping to the same integer bounds gives the same cell, and clamping
// first keeps the int conversion in range. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
