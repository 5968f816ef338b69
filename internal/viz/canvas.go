package viz

import (
	"strings"

	"github.com/san-kum/stablefluid/internal/field"
)

const brailleBlank = 0x2800

// dotBits maps a dot at (column, row) inside a 2×4 cell onto the Unicode
// braille bit layout.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Braille is a dot bitmap drawn with braille characters, 2×4 dots each.
type Braille struct {
	cols, rows int
	cells      []uint8
}

// NewBraille sizes a bitmap for a w×h grid at one dot per cell.
func NewBraille(w, h int) *Braille {
	cols, rows := (w+1)/2, (h+3)/4
	return &Braille{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// Size reports the bitmap's size in characters.
func (b *Braille) Size() (cols, rows int) { return b.cols, b.rows }

// Set lights the dot at (x, y). Dots outside the bitmap are ignored.
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 || x >= 2*b.cols || y >= 4*b.rows {
		return
	}
	b.cells[x/2+(y/4)*b.cols] |= dotBits[y%4][x%2]
}

// Rune returns the character at column c, row r.
func (b *Braille) Rune(c, r int) rune {
	return rune(brailleBlank + int(b.cells[c+r*b.cols]))
}

func (b *Braille) Reset() {
	clear(b.cells)
}

// Plot lights every cell of r whose density reaches threshold.
func (b *Braille) Plot(r field.Reader, threshold float64) {
	b.Reset()
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			if r.At(x, y) >= threshold {
				b.Set(x, y)
			}
		}
	}
}

func (b *Braille) String() string {
	var sb strings.Builder
	sb.Grow(b.rows * (3*b.cols + 1))
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			sb.WriteRune(b.Rune(c, r))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
