// Package render turns density grids into glyphs, images and vector output.
package render

import (
	"strings"

	"github.com/san-kum/stablefluid/internal/field"
)

// Ramp orders glyphs from empty to full.
const Ramp = " .:-=+*#%@"

// Shade maps a density onto a grey level: clamp(v*255, 0, 255), truncated.
// NaN maps to 0.
func Shade(v float64) uint8 {
	x := v * 255
	if !(x > 0) {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// Glyph returns the Ramp character for a density.
func Glyph(v float64) byte {
	return Ramp[int(Shade(v))*(len(Ramp)-1)/255]
}

// ASCII renders r one character per cell, one line per row.
func ASCII(r field.Reader) string {
	w, h := r.Width(), r.Height()
	var sb strings.Builder
	sb.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sb.WriteByte(Glyph(r.At(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
