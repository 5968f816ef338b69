package fluid

import "github.com/san-kum/stablefluid/internal/field"

// project removes divergence from (u, v). div and p are scratch grids of
// the same shape; p ends holding the last pressure solution.
func project(u, v, div, p *field.Grid, iters int) {
	w, h := u.Width(), u.Height()
	uv, vv := u.Values(), v.Values()
	dv, pv := div.Values(), p.Values()
	fw, fh := float64(w), float64(h)

	for y := 1; y < h-1; y++ {
		row := y * w
		for x := 1; x < w-1; x++ {
			i := row + x
			dv[i] = -0.5 * ((uv[i+1]-uv[i-1])/fw + (vv[i+w]-vv[i-w])/fh)
		}
	}
	p.Fill(0)

	// No-flux walls: zero the velocity component normal to each edge.
	for y := 0; y < h; y++ {
		uv[y*w] = 0
		uv[w-1+y*w] = 0
	}
	for x := 0; x < w; x++ {
		vv[x] = 0
		vv[x+(h-1)*w] = 0
	}

	relax(p, div, 1, 4, iters)

	for y := 1; y < h-1; y++ {
		row := y * w
		for x := 1; x < w-1; x++ {
			i := row + x
			uv[i] -= 0.5 * fw * (pv[i+1] - pv[i-1])
			vv[i] -= 0.5 * fh * (pv[i+w] - pv[i-w])
		}
	}
}
