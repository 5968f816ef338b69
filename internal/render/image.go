package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"

	"github.com/san-kum/stablefluid/internal/field"
)

// Image draws each cell as a scale×scale grey square.
func Image(r field.Reader, scale int) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	w, h := r.Width(), r.Height()
	img := image.NewGray(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fill(img.Pix, img.Stride, x*scale, y*scale, scale, Shade(r.At(x, y)))
		}
	}
	return img
}

func fill(pix []uint8, stride, x0, y0, scale int, v uint8) {
	for py := y0; py < y0+scale; py++ {
		row := pix[py*stride+x0 : py*stride+x0+scale]
		for i := range row {
			row[i] = v
		}
	}
}

func WritePNG(w io.Writer, r field.Reader, scale int) error {
	return png.Encode(w, Image(r, scale))
}

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// WriteGIF encodes frames as a looping animation. delay is in hundredths
// of a second per frame.
func WriteGIF(w io.Writer, frames []field.Reader, scale, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, fr := range frames {
		gray := Image(fr, scale)
		img := image.NewPaletted(gray.Bounds(), grayPalette)
		// palette index equals grey level
		copy(img.Pix, gray.Pix)
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}
