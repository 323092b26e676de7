// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gogpu/sview"
)

// Window is a headless sview.Window backed by a software Device.
type Window struct {
	dev   *Device
	title string

	mu     sync.Mutex
	width  int
	height int
	events []sview.Event
	last   *image.RGBA
	swaps  int
	onSwap func(*image.RGBA)

	closeRequested atomic.Bool
	closed         atomic.Bool
}

// NewWindow creates a headless window of the given size. The first poll
// reports its size with an EventResize.
func NewWindow(title string, width, height int) *Window {
	w := &Window{
		dev:    NewDevice(),
		title:  title,
		width:  width,
		height: height,
	}
	w.events = append(w.events, sview.Event{Kind: sview.EventResize, Width: width, Height: height})
	return w
}

// Open is an sview.WindowOpener creating a new headless window.
func Open(title string, width, height int) (sview.Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("soft: invalid window size %dx%d", width, height)
	}
	return NewWindow(title, width, height), nil
}

// Opener returns an sview.WindowOpener that hands out w, so the caller keeps
// a reference for injecting events and taking snapshots.
func Opener(w *Window) sview.WindowOpener {
	return func(string, int, int) (sview.Window, error) {
		return w, nil
	}
}

// Device returns the window's software device.
func (w *Window) Device() sview.Device {
	return w.dev
}

// SoftDevice returns the concrete device, for inspection in tests.
func (w *Window) SoftDevice() *Device {
	return w.dev
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.title
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Inject queues an input event for the next poll.
func (w *Window) Inject(ev sview.Event) {
	w.mu.Lock()
	w.events = append(w.events, ev)
	w.mu.Unlock()
}

// Resize changes the window size and queues an EventResize.
func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.events = append(w.events, sview.Event{Kind: sview.EventResize, Width: width, Height: height})
	w.mu.Unlock()
}

// PollEvents appends and clears the queued events.
func (w *Window) PollEvents(dst []sview.Event) []sview.Event {
	w.mu.Lock()
	dst = append(dst, w.events...)
	w.events = w.events[:0]
	w.mu.Unlock()
	return dst
}

// OnSwap registers fn to be called with each presented frame on the render
// goroutine. The image is only valid during the call.
func (w *Window) OnSwap(fn func(*image.RGBA)) {
	w.mu.Lock()
	w.onSwap = fn
	w.mu.Unlock()
}

// SwapBuffers keeps a copy of the composed frame as the presented image.
func (w *Window) SwapBuffers() error {
	frame := w.dev.Frame()
	if frame == nil {
		return nil
	}

	w.mu.Lock()
	if w.last == nil || w.last.Rect != frame.Rect {
		w.last = image.NewRGBA(frame.Rect)
	}
	copy(w.last.Pix, frame.Pix)
	w.swaps++
	fn := w.onSwap
	w.mu.Unlock()

	if fn != nil {
		fn(frame)
	}
	return nil
}

// Swaps returns the number of presented frames.
func (w *Window) Swaps() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.swaps
}

// Snapshot returns a copy of the last presented frame, or nil before the
// first swap.
func (w *Window) Snapshot() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return nil
	}
	img := image.NewRGBA(w.last.Rect)
	copy(img.Pix, w.last.Pix)
	return img
}

// SavePNG writes the last presented frame to path.
func (w *Window) SavePNG(path string) error {
	img := w.Snapshot()
	if img == nil {
		return fmt.Errorf("soft: no frame presented")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("soft: encode %s: %w", path, err)
	}
	return f.Close()
}

// RequestClose asks the render loop to stop at its next iteration.
func (w *Window) RequestClose() {
	w.closeRequested.Store(true)
}

// ShouldClose reports whether RequestClose was called.
func (w *Window) ShouldClose() bool {
	return w.closeRequested.Load()
}

// Close marks the window closed.
func (w *Window) Close() error {
	w.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (w *Window) Closed() bool {
	return w.closed.Load()
}
