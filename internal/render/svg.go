package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/stablefluid/internal/field"
)

// SVG renders the grid as a heatmap of scale-sized squares on a black
// background. Empty cells are omitted.
func SVG(r field.Reader, scale int) string {
	if scale < 1 {
		scale = 1
	}
	w, h := r.Width()*scale, r.Height()*scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, w, h, w, h))

	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			s := Shade(r.At(x, y))
			if s == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="#%02x%02x%02x"/>
`, x*scale, y*scale, scale, scale, s, s, s))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func WriteSVG(w io.Writer, r field.Reader, scale int) error {
	_, err := io.WriteString(w, SVG(r, scale))
	return err
}
