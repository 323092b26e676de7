package sview

import (
	"image"
	"image/color"
)

var (
	tintContent    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	crosshairBlack = color.NRGBA{A: 0xff}
	crosshairGreen = color.NRGBA{G: 0xff, A: 0xcc}
)

// renderer composes one frame from the pending queue, the cell table and
// the widget panel. It is owned by the render goroutine.
type renderer struct {
	queue   *pendingQueue
	cells   *cellTable
	widgets *widgetController
	stats   *stats
}

// frame runs one merge, refresh and draw cycle for a window of the given
// size. It does not present the frame.
func (r *renderer) frame(dev Device, width, height int) error {
	if records := r.queue.drain(); len(records) > 0 {
		r.cells.merge(records)
		r.stats.merged.Add(uint64(len(records)))
		Logger().Debug("sview: merged", "records", len(records), "cells", r.cells.len())
	}
	if err := refreshCells(dev, r.cells); err != nil {
		return err
	}

	if err := dev.BeginFrame(width, height); err != nil {
		return err
	}
	if err := r.drawCells(dev, image.Rect(0, 0, width, height)); err != nil {
		return err
	}
	if err := r.widgets.draw(dev, image.Rect(width*2/3, 0, width, height)); err != nil {
		return err
	}
	r.stats.frames.Add(1)
	return nil
}

// drawCells draws every cell into its share of viewport.
func (r *renderer) drawCells(dev Device, viewport image.Rectangle) error {
	cols, rows := r.cells.shape()
	for _, c := range r.cells.cells {
		cr := cellRect(viewport, c.key.col, c.key.row, cols, rows)
		inner := Fit(c.content.aspect(), cr)
		if err := drawSlot(dev, &c.content, inner, tintContent); err != nil {
			return err
		}
		if c.flags&FlagCrosshair != 0 {
			col := crosshairBlack
			if c.flags&FlagCrosshairGreen != 0 {
				col = crosshairGreen
			}
			if lines := crosshairLines(inner, c.pitch); len(lines) > 0 {
				if err := dev.DrawLines(lines, col); err != nil {
					return err
				}
			}
		}
		if inner.Empty() {
			continue
		}
		size := image.Pt(c.overlay.width, c.overlay.height)
		caption := Align(size, inset(inner, captionInset), AnchorBottomLeft)
		if err := drawSlot(dev, &c.overlay, caption, tintContent); err != nil {
			return err
		}
	}
	return nil
}

// release discards picture sources that were merged but never uploaded.
func (r *renderer) release() {
	for _, c := range r.cells.cells {
		c.content.source.release()
		c.overlay.source.release()
	}
	r.widgets.release()
}

// drawSlot draws a slot's texture if it has one and dst is non-empty.
func drawSlot(dev Device, s *textureSlot, dst image.Rectangle, tint color.NRGBA) error {
	if !s.ready() || dst.Empty() {
		return nil
	}
	return dev.DrawTexture(s.id, dst, tint)
}
