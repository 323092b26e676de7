package sview

import (
	"image"
	"testing"
)

func TestCellRectPartition(t *testing.T) {
	viewports := []image.Rectangle{
		image.Rect(0, 0, 640, 480),
		image.Rect(0, 0, 101, 37),
		image.Rect(13, 7, 330, 211),
	}
	shapes := [][2]int{{1, 1}, {2, 3}, {3, 2}, {7, 5}}

	for _, vp := range viewports {
		for _, s := range shapes {
			cols, rows := s[0], s[1]
			area := 0
			for row := range rows {
				for col := range cols {
					r := cellRect(vp, col, row, cols, rows)
					if !r.In(vp) {
						t.Errorf("%v %dx%d: cell (%d,%d) = %v outside viewport", vp, cols, rows, col, row, r)
					}
					area += r.Dx() * r.Dy()
					if col+1 < cols {
						next := cellRect(vp, col+1, row, cols, rows)
						if next.Min.X != r.Max.X {
							t.Errorf("%v %dx%d: gap between cols %d and %d", vp, cols, rows, col, col+1)
						}
					}
					if row+1 < rows {
						next := cellRect(vp, col, row+1, cols, rows)
						if next.Min.Y != r.Max.Y {
							t.Errorf("%v %dx%d: gap between rows %d and %d", vp, cols, rows, row, row+1)
						}
					}
				}
			}
			if want := vp.Dx() * vp.Dy(); area != want {
				t.Errorf("%v %dx%d: cell area %d, want %d", vp, cols, rows, area, want)
			}
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name   string
		aspect float64
		r      image.Rectangle
		want   image.Rectangle
	}{
		{"square in wide", 1, image.Rect(0, 0, 200, 100), image.Rect(52, 2, 148, 98)},
		{"wide in square", 2, image.Rect(0, 0, 100, 100), image.Rect(2, 27, 98, 73)},
		{"exact fit with offset", 2, image.Rect(10, 20, 110, 70), image.Rect(12, 22, 108, 68)},
		{"too small", 1, image.Rect(0, 0, 4, 4), image.Rectangle{}},
		{"just visible", 1, image.Rect(0, 0, 5, 5), image.Rect(2, 2, 3, 3)},
		{"empty rect", 1, image.Rectangle{}, image.Rectangle{}},
		{"zero aspect", 0, image.Rect(0, 0, 100, 100), image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.aspect, tt.r)
			if got != tt.want {
				t.Errorf("Fit(%v, %v) = %v, want %v", tt.aspect, tt.r, got, tt.want)
			}
			if !got.Empty() && !got.In(tt.r) {
				t.Errorf("Fit result %v escapes %v", got, tt.r)
			}
		})
	}
}

func TestAlign(t *testing.T) {
	r := image.Rect(0, 0, 100, 50)
	size := image.Pt(10, 4)
	tests := []struct {
		anchor Anchor
		want   image.Rectangle
	}{
		{AnchorTopLeft, image.Rect(0, 0, 10, 4)},
		{AnchorTopCenter, image.Rect(45, 0, 55, 4)},
		{AnchorTopRight, image.Rect(90, 0, 100, 4)},
		{AnchorMiddleLeft, image.Rect(0, 23, 10, 27)},
		{AnchorMiddleCenter, image.Rect(45, 23, 55, 27)},
		{AnchorMiddleRight, image.Rect(90, 23, 100, 27)},
		{AnchorBottomLeft, image.Rect(0, 46, 10, 50)},
		{AnchorBottomCenter, image.Rect(45, 46, 55, 50)},
		{AnchorBottomRight, image.Rect(90, 46, 100, 50)},
	}
	for _, tt := range tests {
		got := Align(size, r, tt.anchor)
		if got != tt.want {
			t.Errorf("Align(anchor %d) = %v, want %v", tt.anchor, got, tt.want)
		}
		if got.Size() != size {
			t.Errorf("Align(anchor %d) size = %v, want %v", tt.anchor, got.Size(), size)
		}
	}
}

func TestAlignLargerThanRect(t *testing.T) {
	// The texture is never scaled down to fit.
	got := Align(image.Pt(30, 30), image.Rect(0, 0, 10, 10), AnchorBottomRight)
	if want := image.Rect(-20, -20, 10, 10); got != want {
		t.Errorf("Align() = %v, want %v", got, want)
	}
}

func TestInsetAndPadLeft(t *testing.T) {
	r := image.Rect(0, 0, 100, 40)
	if got, want := inset(r, 10), image.Rect(10, 10, 90, 30); got != want {
		t.Errorf("inset() = %v, want %v", got, want)
	}
	if got := inset(r, 30); !got.Empty() {
		t.Errorf("inset() past the centre = %v, want empty", got)
	}
	// Crossed edges stay where they are; the bottom edge keeps its meaning.
	short := inset(image.Rect(0, 0, 100, 14), 10)
	if want := (image.Rectangle{Min: image.Pt(10, 10), Max: image.Pt(90, 4)}); short != want {
		t.Errorf("inset() of a short rect = %v, want %v", short, want)
	}
	if got, want := Align(image.Pt(20, 10), short, AnchorBottomLeft), image.Rect(10, -6, 30, 4); got != want {
		t.Errorf("Align() in a short inset = %v, want %v", got, want)
	}
	if got, want := padLeft(r, 25), image.Rect(25, 0, 100, 40); got != want {
		t.Errorf("padLeft() = %v, want %v", got, want)
	}
}

func TestCrosshairLines(t *testing.T) {
	r := image.Rect(0, 0, 100, 100)
	tests := []struct {
		name  string
		pitch int
		want  int
	}{
		{"no grid", 0, 2},
		{"negative pitch", -5, 2},
		{"grid clipped by rect", 10, 22},
		{"grid capped at ten per side", 3, 42},
		{"pitch beyond rect", 60, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := crosshairLines(r, tt.pitch)
			if len(lines) != tt.want {
				t.Errorf("crosshairLines(pitch %d) = %d lines, want %d", tt.pitch, len(lines), tt.want)
			}
			for _, l := range lines {
				for _, p := range []image.Point{{l.X0, l.Y0}, {l.X1, l.Y1}} {
					if p.X < r.Min.X || p.X > r.Max.X || p.Y < r.Min.Y || p.Y > r.Max.Y {
						t.Errorf("line %v leaves %v", l, r)
					}
				}
				if l.X0 != l.X1 && l.Y0 != l.Y1 {
					t.Errorf("line %v is not axis-aligned", l)
				}
			}
		})
	}

	centre := crosshairLines(r, 0)
	if centre[0] != (Line{50, 0, 50, 100}) || centre[1] != (Line{0, 50, 100, 50}) {
		t.Errorf("centre lines = %v", centre)
	}
	if got := crosshairLines(image.Rectangle{}, 5); got != nil {
		t.Errorf("crosshairLines(empty) = %v, want nil", got)
	}
}
