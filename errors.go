package sview

import "errors"

// Common errors returned by sview.
var (
	// ErrUnsupportedFormat is returned when a pixel format is not one of
	// RGBA, BGRA, RGB or Intensity.
	ErrUnsupportedFormat = errors.New("sview: unsupported pixel format")

	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("sview: invalid dimensions")

	// ErrReleased is returned by a second Release of the same picture.
	ErrReleased = errors.New("sview: picture already released")

	// ErrInvalidCell is returned when a cell column or row is negative.
	ErrInvalidCell = errors.New("sview: invalid cell coordinates")

	// ErrClosed is returned when submitting to, or starting, a viewer that
	// has been closed.
	ErrClosed = errors.New("sview: viewer is closed")

	// ErrNoWindow is returned when a viewer is started without a window opener.
	ErrNoWindow = errors.New("sview: no window opener")

	// ErrAlreadyStarted is returned when Run or Start is called twice.
	ErrAlreadyStarted = errors.New("sview: render loop already started")
)
