package sview

import (
	"encoding/binary"
	"strings"

	"github.com/gogpu/sview/internal/font8x8"
)

const (
	// textBackground is the canvas fill for rasterized text, as RGBA bytes
	// read little-endian: black at half opacity.
	textBackground = 0x80000000

	// textForeground is the glyph colour: opaque white.
	textForeground = 0xffffffff

	// textSpacing scales the glyph size to the advance on both axes.
	textSpacing = 1.1
)

// RasterizeText renders text into a new RGBA picture using the built-in
// 8×8 bitmap font scaled to glyphSize pixels. Lines break on '\n'. A single
// trailing newline is ignored. The canvas is clamped to maxWidth×maxHeight.
//
// Characters that are not printable ASCII are skipped. RasterizeText returns
// nil if there is nothing to draw.
func RasterizeText(maxWidth, maxHeight, glyphSize int, text string) *Picture {
	text = strings.TrimSuffix(text, "\n")
	if text == "" || glyphSize <= 0 {
		return nil
	}

	adv := int(float64(glyphSize) * textSpacing)
	border := glyphSize / 8

	width, height := 0, glyphSize
	x := 0
	for _, c := range text {
		switch {
		case c == '\n':
			height += adv
			x = 0
		case font8x8.Printable(c):
			x += adv
			width = max(width, x)
		}
	}
	width = min(maxWidth, width+2*border)
	height = min(maxHeight, height+2*border)

	p, err := AllocPicture(max(width, 0), max(height, 0), FormatRGBA, false)
	if err != nil {
		// RGBA is always supported and dimensions are clamped non-negative.
		panic(err)
	}
	pix, stride := p.Pix()
	for i := 0; i+4 <= len(pix); i += 4 {
		binary.LittleEndian.PutUint32(pix[i:], textBackground)
	}

	left, top := border, border
	for _, c := range text {
		if c == '\n' {
			top += adv
			left = border
			continue
		}
		g, ok := font8x8.Lookup(c)
		if !ok {
			continue
		}
		for y := top; y < top+glyphSize && y < p.Height; y++ {
			fy := min((y-top)*font8x8.Size/glyphSize, font8x8.Size-1)
			row := pix[y*stride:]
			for x := left; x < left+glyphSize && x < p.Width; x++ {
				fx := min((x-left)*font8x8.Size/glyphSize, font8x8.Size-1)
				if g.Lit(fx, fy) {
					binary.LittleEndian.PutUint32(row[x*4:], textForeground)
				}
			}
		}
		left += adv
	}
	return p
}
