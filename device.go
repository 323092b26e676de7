package sview

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// TextureID is a device texture handle. The zero value means no texture.
type TextureID uint32

// Layout describes how uploaded bytes map to texture channels.
type Layout uint8

const (
	// LayoutRGBA reads 4 bytes per pixel in R, G, B, A order.
	LayoutRGBA Layout = iota

	// LayoutBGRA reads 4 bytes per pixel in B, G, R, A order into an RGBA texture.
	LayoutBGRA

	// LayoutRGB reads 3 bytes per pixel; alpha is opaque.
	LayoutRGB

	// LayoutLuminance reads 1 byte per pixel replicated to R, G and B.
	LayoutLuminance
)

// layoutOf maps a pixel format to its upload layout.
func layoutOf(f PixelFormat) Layout {
	switch f {
	case FormatBGRA:
		return LayoutBGRA
	case FormatRGB:
		return LayoutRGB
	case FormatIntensity:
		return LayoutLuminance
	default:
		return LayoutRGBA
	}
}

// BytesPerPixel returns the number of source bytes per pixel.
func (l Layout) BytesPerPixel() int {
	switch l {
	case LayoutRGB:
		return 3
	case LayoutLuminance:
		return 1
	default:
		return 4
	}
}

// TextureFormat returns the texture format a device stores this layout as.
func (l Layout) TextureFormat() gputypes.TextureFormat {
	if l == LayoutLuminance {
		return gputypes.TextureFormatR8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// Upload is the pixel data for one texture upload. Pix holds Height rows of
// Stride bytes each.
type Upload struct {
	Width  int
	Height int
	Stride int
	Layout Layout
	Pix    []byte
}

// Line is a segment in window coordinates.
type Line struct {
	X0, Y0, X1, Y1 int
}

// Device is the graphics context owned by the render goroutine.
//
// Implementations need not be safe for concurrent use.
type Device interface {
	// NewTexture allocates an empty texture.
	NewTexture() (TextureID, error)

	// Upload replaces the content of a texture.
	Upload(id TextureID, u Upload) error

	// BeginFrame clears the frame and sets up a top-left origin projection
	// for a window of the given size.
	BeginFrame(width, height int) error

	// DrawTexture draws a texture stretched over dst, modulated by tint.
	DrawTexture(id TextureID, dst image.Rectangle, tint color.NRGBA) error

	// DrawLines draws one-pixel line segments in a single colour.
	DrawLines(lines []Line, c color.NRGBA) error
}

// EventKind identifies the type of an input event.
type EventKind uint8

const (
	// EventResize reports a new window size in Width and Height. It is also
	// sent on expose.
	EventResize EventKind = iota

	// EventPress reports a pointer button press at X, Y.
	EventPress

	// EventRelease reports a pointer button release at X, Y.
	EventRelease

	// EventMotion reports pointer motion to X, Y.
	EventMotion

	// EventClose reports that the user asked to close the window.
	EventClose
)

// Event is an input event from the window, in window coordinates.
type Event struct {
	Kind          EventKind
	X, Y          int
	Width, Height int
}

// Window is a native window with its graphics device and event pump.
// All methods are called from the render goroutine.
type Window interface {
	// Device returns the graphics device bound to the window.
	Device() Device

	// Size returns the current drawable size.
	Size() (width, height int)

	// PollEvents appends pending events to dst without blocking.
	PollEvents(dst []Event) []Event

	// SwapBuffers presents the frame.
	SwapBuffers() error

	// ShouldClose reports whether the window was asked to close.
	ShouldClose() bool

	// Close destroys the window.
	Close() error
}

// WindowOpener creates a window. It is called on the render goroutine,
// which stays locked to its OS thread.
type WindowOpener func(title string, width, height int) (Window, error)
