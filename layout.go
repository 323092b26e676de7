package sview

import "image"

// Anchor positions a fixed-size rectangle inside another on a 3×3 grid.
type Anchor uint8

// Anchors are numbered row by row starting at the top-left corner.
const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorMiddleLeft
	AnchorMiddleCenter
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

const (
	// fitInset is the margin kept around a fitted picture on every side.
	fitInset = 2

	// captionInset is the margin between a picture edge and its caption.
	captionInset = 10

	// gridLinesPerSide is the maximum number of crosshair grid lines drawn
	// on each side of the centre.
	gridLinesPerSide = 10
)

// cellRect returns the rectangle of cell (col, row) in a cols×rows grid
// covering viewport. Edges are computed by integer division, so adjacent
// cells share edges and the cells tile the viewport exactly.
func cellRect(viewport image.Rectangle, col, row, cols, rows int) image.Rectangle {
	w, h := viewport.Dx(), viewport.Dy()
	return image.Rect(
		viewport.Min.X+w*col/cols,
		viewport.Min.Y+h*row/rows,
		viewport.Min.X+w*(col+1)/cols,
		viewport.Min.Y+h*(row+1)/rows,
	)
}

// Fit returns the largest rectangle with the given aspect ratio (width over
// height) centred in r, inset by 2 pixels on every side. It returns the
// empty rectangle when nothing would be visible.
func Fit(aspect float64, r image.Rectangle) image.Rectangle {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 || aspect <= 0 {
		return image.Rectangle{}
	}
	ra := float64(w) / float64(h)
	switch {
	case ra > aspect:
		w = int(float64(h) * aspect)
	case ra < aspect:
		h = int(float64(w) / aspect)
	}

	w -= 2 * fitInset
	h -= 2 * fitInset
	if w < 1 || h < 1 {
		return image.Rectangle{}
	}
	left := r.Min.X + (r.Dx()-w)/2
	top := r.Min.Y + (r.Dy()-h)/2
	return image.Rect(left, top, left+w, top+h)
}

// Align returns a rectangle of exactly size placed inside r at anchor.
// One edge per axis is pinned to r; the texture is never stretched.
func Align(size image.Point, r image.Rectangle, anchor Anchor) image.Rectangle {
	var out image.Rectangle

	switch anchor / 3 {
	case 0:
		out.Min.Y = r.Min.Y
		out.Max.Y = r.Min.Y + size.Y
	case 1:
		out.Min.Y = (r.Min.Y+r.Max.Y)/2 - size.Y/2
		out.Max.Y = out.Min.Y + size.Y
	default:
		out.Max.Y = r.Max.Y
		out.Min.Y = r.Max.Y - size.Y
	}

	switch anchor % 3 {
	case 0:
		out.Min.X = r.Min.X
		out.Max.X = r.Min.X + size.X
	case 1:
		out.Min.X = (r.Min.X+r.Max.X)/2 - size.X/2
		out.Max.X = out.Min.X + size.X
	default:
		out.Max.X = r.Max.X
		out.Min.X = r.Max.X - size.X
	}
	return out
}

// inset shrinks r by d on every side without normalising, so the result
// may be empty.
func inset(r image.Rectangle, d int) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(r.Min.X+d, r.Min.Y+d),
		Max: image.Pt(r.Max.X-d, r.Max.Y-d),
	}
}

// padLeft moves the left edge of r right by d.
func padLeft(r image.Rectangle, d int) image.Rectangle {
	r.Min.X += d
	return r
}

// crosshairLines returns a vertical and a horizontal line through the centre
// of r and, when pitch > 0, up to ten parallel lines on each side of the
// centre on both axes. Lines falling outside r are omitted.
func crosshairLines(r image.Rectangle, pitch int) []Line {
	if r.Empty() {
		return nil
	}
	xc := (r.Min.X + r.Max.X) / 2
	yc := (r.Min.Y + r.Max.Y) / 2

	lines := []Line{
		{xc, r.Min.Y, xc, r.Max.Y},
		{r.Min.X, yc, r.Max.X, yc},
	}
	if pitch <= 0 {
		return lines
	}
	for i := 1; i <= gridLinesPerSide; i++ {
		d := i * pitch
		for _, x := range [2]int{xc + d, xc - d} {
			if x >= r.Min.X && x <= r.Max.X {
				lines = append(lines, Line{x, r.Min.Y, x, r.Max.Y})
			}
		}
		for _, y := range [2]int{yc + d, yc - d} {
			if y >= r.Min.Y && y <= r.Max.Y {
				lines = append(lines, Line{r.Min.X, y, r.Max.X, y})
			}
		}
	}
	return lines
}
