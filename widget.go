package sview

import (
	"image"
	"image/color"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// widgetRowHeight is the height of one widget row in the side panel.
	widgetRowHeight = 16

	// widgetPanelInset is the margin around the widget rows.
	widgetPanelInset = 5

	// widgetColumnGap separates the label column from the value column.
	widgetColumnGap = 10

	// dragRange is the pointer travel in pixels that sweeps a widget across
	// its whole [Min, Max] range.
	dragRange = 1000
)

var (
	tintHighlight = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	tintDefault   = color.NRGBA{R: 0xb3, G: 0xb3, B: 0xb3, A: 0xff}
)

// Widget describes a numeric slider shown in the side panel. Dragging it
// horizontally changes Value within [Min, Max].
//
// Widget descriptors are owned by the caller and must not be modified while
// the viewer runs. Value may be read concurrently from any goroutine.
type Widget struct {
	Name string
	Min  int64
	Max  int64

	// Value is the externally owned value the widget edits.
	Value *atomic.Int64

	// Updated, if non-nil, is called on the render goroutine after each
	// change of Value.
	Updated func(*Widget)
}

// widgetState is the UI state kept for one widget descriptor.
type widgetState struct {
	label    textureSlot
	value    textureSlot
	valueStr string

	hitbox image.Rectangle
	hover  bool
	grab   bool

	grabX     int
	grabValue int64
}

// widgetController owns the side table of widget states, indexed like the
// descriptor slice.
type widgetController struct {
	widgets  []Widget
	states   []widgetState
	prepared bool

	printer   *message.Printer
	glyphSize int
	maxWidth  int
	maxHeight int
}

func newWidgetController(widgets []Widget, cfg Config) *widgetController {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		Logger().Warn("sview: unknown locale, using und", "locale", cfg.Locale, "err", err)
		tag = language.Und
	}
	return &widgetController{
		widgets:   widgets,
		states:    make([]widgetState, len(widgets)),
		printer:   message.NewPrinter(tag),
		glyphSize: cfg.GlyphSize,
		maxWidth:  cfg.CaptionMaxWidth,
		maxHeight: cfg.CaptionMaxHeight,
	}
}

// prepare renders the label textures the first time it is called.
func (c *widgetController) prepare(dev Device) error {
	if c.prepared {
		return nil
	}
	for i := range c.widgets {
		pic := RasterizeText(c.maxWidth, c.maxHeight, c.glyphSize, c.widgets[i].Name)
		if err := c.states[i].label.usePicture(dev, pic); err != nil {
			return err
		}
	}
	c.prepared = true
	return nil
}

// stack lays the widget hitboxes out as fixed-height rows inside panel, in
// descriptor order.
func (c *widgetController) stack(panel image.Rectangle) {
	r := inset(panel, widgetPanelInset)
	for i := range c.states {
		c.states[i].hitbox = image.Rectangle{
			Min: r.Min,
			Max: image.Pt(r.Max.X, r.Min.Y+widgetRowHeight),
		}
		r.Min.Y += widgetRowHeight
	}
}

// handle advances every widget's state machine for a pointer event.
func (c *widgetController) handle(ev Event) {
	if ev.Kind != EventPress && ev.Kind != EventRelease && ev.Kind != EventMotion {
		return
	}
	for i := range c.widgets {
		w := &c.widgets[i]
		st := &c.states[i]

		st.hover = inside(ev.X, ev.Y, st.hitbox)

		switch ev.Kind {
		case EventPress:
			if st.hover && w.Value != nil {
				st.grab = true
				st.grabX = ev.X
				st.grabValue = w.Value.Load()
			}
		case EventRelease:
			st.grab = false
		case EventMotion:
			if st.grab {
				w.Value.Store(dragValue(w, st.grabValue, ev.X-st.grabX))
				if w.Updated != nil {
					w.Updated(w)
				}
			}
		}
	}
}

// dragValue maps a horizontal pointer delta to a new value. The result is
// clamped to [Min, Max] and truncated toward zero.
func dragValue(w *Widget, grabValue int64, delta int) int64 {
	// The span is taken in float64 so that extreme bounds cannot overflow.
	span := float64(w.Max) - float64(w.Min)
	v := float64(grabValue) + float64(delta)*span/dragRange
	switch {
	case v >= float64(w.Max):
		return w.Max
	case v <= float64(w.Min):
		return w.Min
	}
	return min(max(int64(v), w.Min), w.Max)
}

// inside reports whether (x, y) lies in r, edges included.
func inside(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X && x <= r.Max.X && y >= r.Min.Y && y <= r.Max.Y
}

// format renders a widget value for display.
func (c *widgetController) format(v int64) string {
	return c.printer.Sprintf("%d", v)
}

// draw lays out and draws the widget panel. Value textures are re-rendered
// only when the formatted value changes.
func (c *widgetController) draw(dev Device, panel image.Rectangle) error {
	if len(c.widgets) == 0 {
		return nil
	}
	if err := c.prepare(dev); err != nil {
		return err
	}
	c.stack(panel)

	col1 := 0
	for i := range c.states {
		st := &c.states[i]
		rt := Align(image.Pt(st.label.width, st.label.height), st.hitbox, AnchorMiddleLeft)
		if err := drawSlot(dev, &st.label, rt, st.tint()); err != nil {
			return err
		}
		col1 = max(col1, rt.Dx())
	}
	col1 += widgetColumnGap

	for i := range c.widgets {
		st := &c.states[i]
		var v int64
		if c.widgets[i].Value != nil {
			v = c.widgets[i].Value.Load()
		}
		if s := c.format(v); s != st.valueStr {
			st.valueStr = s
			pic := RasterizeText(c.maxWidth, c.maxHeight, c.glyphSize, s)
			if err := st.value.usePicture(dev, pic); err != nil {
				return err
			}
		}
		rt := Align(image.Pt(st.value.width, st.value.height), padLeft(st.hitbox, col1), AnchorMiddleLeft)
		if err := drawSlot(dev, &st.value, rt, st.tint()); err != nil {
			return err
		}
	}
	return nil
}

// tint returns the highlight colour while hovered or grabbed.
func (st *widgetState) tint() color.NRGBA {
	if st.hover || st.grab {
		return tintHighlight
	}
	return tintDefault
}

// release discards any texture sources still held by widget states.
func (c *widgetController) release() {
	for i := range c.states {
		c.states[i].label.source.release()
		c.states[i].value.source.release()
	}
}
