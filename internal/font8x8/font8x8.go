// Package font8x8 provides an 8×8 monochrome bitmap font for printable
// ASCII, downsampled once from the 7×13 face in golang.org/x/image/font/basicfont.
//
// Each glyph is eight rows, top to bottom. Bit x of a row (1<<x) is set when
// column x, counted from the left, is lit.
package font8x8

import (
	"image"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Size is the width and height of a glyph in pixels.
const Size = 8

// Glyph is one 8×8 bitmap.
type Glyph [Size]uint8

// table holds a glyph for every ASCII code point; control characters are blank.
var table [128]Glyph

func init() {
	face := basicfont.Face7x13
	for c := ' '; c <= '~'; c++ {
		table[c] = sample(face, c)
	}
}

// sample rasterizes r from face and downsamples it to 8×8. A pixel is lit
// when any source pixel of its block is, so one-pixel strokes survive.
func sample(face *basicfont.Face, r rune) Glyph {
	var g Glyph
	dot := fixed.P(0, face.Ascent)
	dr, mask, maskp, _, ok := face.Glyph(dot, r)
	if !ok || dr.Empty() {
		return g
	}
	// Sample over the full cell so glyphs keep their baseline and ascent.
	cell := image.Rect(0, 0, face.Advance, face.Height)
	for fy := range Size {
		y0, y1 := span(cell.Min.Y, cell.Dy(), fy)
		for fx := range Size {
			x0, x1 := span(cell.Min.X, cell.Dx(), fx)
			if lit(mask, maskp, dr, image.Rect(x0, y0, x1, y1)) {
				g[fy] |= 1 << fx
			}
		}
	}
	return g
}

// span returns the source range covered by target pixel i when n source
// pixels starting at start are mapped onto Size target pixels.
func span(start, n, i int) (lo, hi int) {
	lo = start + i*n/Size
	hi = max(start+(i+1)*n/Size, lo+1)
	return lo, hi
}

// lit reports whether any pixel of block inside the glyph bounds dr is set
// in mask.
func lit(mask image.Image, maskp image.Point, dr, block image.Rectangle) bool {
	block = block.Intersect(dr)
	for y := block.Min.Y; y < block.Max.Y; y++ {
		for x := block.Min.X; x < block.Max.X; x++ {
			_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				return true
			}
		}
	}
	return false
}

// Lookup returns the glyph for c. Code points outside ASCII and control
// characters yield a blank glyph and false.
func Lookup(c rune) (Glyph, bool) {
	if !Printable(c) {
		return Glyph{}, false
	}
	return table[c], true
}

// Printable reports whether c is a printable ASCII character.
func Printable(c rune) bool {
	return c >= ' ' && c <= '~'
}

// Lit reports whether pixel (x, y) of g is set.
func (g Glyph) Lit(x, y int) bool {
	return g[y]&(1<<x) != 0
}
