package sview

import (
	"image"
	"math"
	"sync/atomic"
	"testing"
)

func TestDragValue(t *testing.T) {
	tests := []struct {
		name     string
		min, max int64
		grab     int64
		delta    int
		want     int64
	}{
		{"half range", 0, 100, 50, 500, 100},
		{"clamped high", 0, 100, 50, 600, 100},
		{"clamped low", 0, 100, 50, -1000, 0},
		{"no motion", 0, 100, 42, 0, 42},
		{"truncated", 0, 10, 0, 150, 1},
		{"truncated toward zero", -10, 10, 0, -75, -1},
		{"wide range", 0, 1000000, 0, 1, 1000},
		{"full int64 range high", math.MinInt64, math.MaxInt64, 0, 1000, math.MaxInt64},
		{"full int64 range low", math.MinInt64, math.MaxInt64, 0, -1000, math.MinInt64},
		{"at int64 max", math.MinInt64, math.MaxInt64, math.MaxInt64, 0, math.MaxInt64},
		{"full int64 range half", math.MinInt64, math.MaxInt64, math.MinInt64, 500, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Widget{Min: tt.min, Max: tt.max}
			if got := dragValue(w, tt.grab, tt.delta); got != tt.want {
				t.Errorf("dragValue(grab %d, delta %d) = %d, want %d", tt.grab, tt.delta, got, tt.want)
			}
		})
	}
}

// newTestController returns a controller for two widgets laid out in the
// panel (400,0)-(600,480): row 0 spans (405,5)-(595,21), row 1 spans
// (405,21)-(595,37).
func newTestController(t *testing.T) (*widgetController, []Widget, *int) {
	t.Helper()
	var a, b atomic.Int64
	a.Store(50)
	b.Store(7)
	updates := new(int)
	widgets := []Widget{
		{Name: "gain", Min: 0, Max: 100, Value: &a, Updated: func(*Widget) { *updates++ }},
		{Name: "offset", Min: -10, Max: 10, Value: &b},
	}
	c := newWidgetController(widgets, DefaultConfig())
	c.stack(image.Rect(400, 0, 600, 480))
	return c, widgets, updates
}

func TestWidgetStack(t *testing.T) {
	c, _, _ := newTestController(t)
	want := []image.Rectangle{
		image.Rect(405, 5, 595, 21),
		image.Rect(405, 21, 595, 37),
	}
	for i, r := range want {
		if got := c.states[i].hitbox; got != r {
			t.Errorf("hitbox[%d] = %v, want %v", i, got, r)
		}
	}
}

func TestWidgetDrag(t *testing.T) {
	c, widgets, updates := newTestController(t)

	c.handle(Event{Kind: EventPress, X: 450, Y: 10})
	if !c.states[0].grab || c.states[1].grab {
		t.Fatalf("grab = %v, %v; want true, false", c.states[0].grab, c.states[1].grab)
	}

	c.handle(Event{Kind: EventMotion, X: 700, Y: 200})
	if got := widgets[0].Value.Load(); got != 75 {
		t.Errorf("value after +250px = %d, want 75", got)
	}
	c.handle(Event{Kind: EventMotion, X: 950, Y: 200})
	if got := widgets[0].Value.Load(); got != 100 {
		t.Errorf("value after +500px = %d, want 100", got)
	}
	if *updates != 2 {
		t.Errorf("Updated called %d times, want 2", *updates)
	}
	if got := widgets[1].Value.Load(); got != 7 {
		t.Errorf("other widget changed to %d", got)
	}

	// Releasing away from the widget ends the drag and the highlight.
	c.handle(Event{Kind: EventRelease, X: 950, Y: 200})
	if c.states[0].grab || c.states[0].hover {
		t.Errorf("after release: grab = %v, hover = %v; want false, false", c.states[0].grab, c.states[0].hover)
	}
	c.handle(Event{Kind: EventMotion, X: 400, Y: 10})
	if got := widgets[0].Value.Load(); got != 100 {
		t.Errorf("value changed after release: %d", got)
	}
}

func TestWidgetPressOutside(t *testing.T) {
	c, widgets, updates := newTestController(t)
	c.handle(Event{Kind: EventPress, X: 100, Y: 10})
	c.handle(Event{Kind: EventMotion, X: 900, Y: 10})
	if c.states[0].grab || widgets[0].Value.Load() != 50 || *updates != 0 {
		t.Error("press outside any hitbox started a drag")
	}
}

func TestWidgetHoverInclusive(t *testing.T) {
	c, _, _ := newTestController(t)
	tests := []struct {
		x, y       int
		row0, row1 bool
	}{
		{405, 5, true, false},
		{595, 21, true, true},
		{404, 5, false, false},
		{500, 37, false, true},
		{500, 38, false, false},
	}
	for _, tt := range tests {
		c.handle(Event{Kind: EventMotion, X: tt.x, Y: tt.y})
		if c.states[0].hover != tt.row0 || c.states[1].hover != tt.row1 {
			t.Errorf("(%d,%d): hover = %v, %v; want %v, %v",
				tt.x, tt.y, c.states[0].hover, c.states[1].hover, tt.row0, tt.row1)
		}
	}
}

func TestWidgetIgnoresNilValue(t *testing.T) {
	c := newWidgetController([]Widget{{Name: "x", Max: 10}}, DefaultConfig())
	c.stack(image.Rect(0, 0, 100, 100))
	c.handle(Event{Kind: EventPress, X: 10, Y: 10})
	c.handle(Event{Kind: EventMotion, X: 90, Y: 10})
	if c.states[0].grab {
		t.Error("widget without a value was grabbed")
	}
}

func TestWidgetDrawRerendersOnChange(t *testing.T) {
	c, widgets, _ := newTestController(t)
	dev := &mockDevice{}
	panel := image.Rect(400, 0, 600, 480)

	if err := c.draw(dev, panel); err != nil {
		t.Fatalf("draw() error = %v", err)
	}
	if len(dev.uploads) != 4 {
		t.Fatalf("first draw uploaded %d textures, want 4 (2 labels, 2 values)", len(dev.uploads))
	}
	if len(dev.draws) != 4 {
		t.Errorf("first draw issued %d draws, want 4", len(dev.draws))
	}

	if err := c.draw(dev, panel); err != nil {
		t.Fatalf("draw() error = %v", err)
	}
	if len(dev.uploads) != 4 {
		t.Errorf("unchanged values re-uploaded: %d uploads", len(dev.uploads))
	}

	widgets[1].Value.Store(-3)
	if err := c.draw(dev, panel); err != nil {
		t.Fatalf("draw() error = %v", err)
	}
	if len(dev.uploads) != 5 {
		t.Errorf("changed value uploaded %d times in total, want 5", len(dev.uploads))
	}
	if dev.textures != 4 {
		t.Errorf("allocated %d textures, want 4", dev.textures)
	}
}

func TestWidgetDrawLayout(t *testing.T) {
	c, _, _ := newTestController(t)
	dev := &mockDevice{}
	if err := c.draw(dev, image.Rect(400, 0, 600, 480)); err != nil {
		t.Fatalf("draw() error = %v", err)
	}
	// Draw order: label 0, label 1, value 0, value 1.
	label0, label1, value0 := dev.draws[0].dst, dev.draws[1].dst, dev.draws[2].dst
	if label0.Min.X != 405 || label1.Min.X != 405 {
		t.Errorf("labels start at x = %d, %d; want 405", label0.Min.X, label1.Min.X)
	}
	// "offset" is the widest label: 6 glyphs of 8 plus a 1px border each side.
	if want := 405 + 50 + widgetColumnGap; value0.Min.X != want {
		t.Errorf("value column starts at x = %d, want %d", value0.Min.X, want)
	}
	if label0.Min.Y < 5 || label0.Max.Y > 21 {
		t.Errorf("label 0 = %v, not centred in its row", label0)
	}
	for i, d := range dev.draws {
		if d.tint != tintDefault {
			t.Errorf("draw %d tint = %v, want default", i, d.tint)
		}
	}

	c.handle(Event{Kind: EventMotion, X: 500, Y: 30})
	if err := c.draw(dev, image.Rect(400, 0, 600, 480)); err != nil {
		t.Fatalf("draw() error = %v", err)
	}
	if dev.draws[5].tint != tintHighlight || dev.draws[4].tint != tintDefault {
		t.Error("hovered widget is not highlighted")
	}
}

func TestWidgetFormatLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", "1,234,567"},
		{"de", "1.234.567"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Locale = tt.locale
		c := newWidgetController(nil, cfg)
		if got := c.format(1234567); got != tt.want {
			t.Errorf("format(1234567) in %s = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestWidgetDrawWithoutWidgets(t *testing.T) {
	c := newWidgetController(nil, DefaultConfig())
	dev := &mockDevice{}
	if err := c.draw(dev, image.Rect(0, 0, 10, 10)); err != nil {
		t.Fatalf("draw() error = %v", err)
	}
	if dev.textures != 0 || len(dev.draws) != 0 {
		t.Error("empty widget panel touched the device")
	}
}
