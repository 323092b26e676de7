package sview

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// PixelFormat represents the pixel storage format of a Picture.
type PixelFormat uint8

const (
	// FormatRGBA is 32-bit RGBA (4 bytes per pixel).
	FormatRGBA PixelFormat = iota

	// FormatBGRA is 32-bit BGRA (4 bytes per pixel).
	FormatBGRA

	// FormatRGB is 24-bit RGB without alpha (3 bytes per pixel).
	FormatRGB

	// FormatIntensity is 8-bit single-channel intensity (1 byte per pixel).
	FormatIntensity

	// formatCount is the number of formats (for internal use).
	formatCount
)

// rowAlign is the byte boundary every picture row is padded to.
const rowAlign = 4

// formatInfo contains metadata about a pixel format.
type formatInfo struct {
	name          string
	bytesPerPixel int
}

var formatInfoTable = [formatCount]formatInfo{
	FormatRGBA:      {name: "RGBA", bytesPerPixel: 4},
	FormatBGRA:      {name: "BGRA", bytesPerPixel: 4},
	FormatRGB:       {name: "RGB", bytesPerPixel: 3},
	FormatIntensity: {name: "Intensity", bytesPerPixel: 1},
}

// IsValid returns true if the format is a supported format.
func (f PixelFormat) IsValid() bool {
	return f < formatCount
}

// BytesPerPixel returns the number of bytes per pixel, or 0 for an
// unsupported format.
func (f PixelFormat) BytesPerPixel() int {
	if !f.IsValid() {
		return 0
	}
	return formatInfoTable[f].bytesPerPixel
}

// TextureFormat returns the GPU texture format a picture of this format is
// stored as once uploaded. BGRA is swizzled and RGB widened, so both end
// up as RGBA8Unorm on the device.
func (f PixelFormat) TextureFormat() gputypes.TextureFormat {
	if !f.IsValid() {
		return gputypes.TextureFormatUndefined
	}
	return layoutOf(f).TextureFormat()
}

// Stride returns the row stride for the given width, padded up to a
// 4-byte boundary.
func (f PixelFormat) Stride(width int) int {
	return (f.BytesPerPixel()*width + rowAlign - 1) &^ (rowAlign - 1)
}

// String returns a string representation of the format.
func (f PixelFormat) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
	return formatInfoTable[f].name
}

// Picture is an owned pixel buffer with format metadata.
//
// A Picture has exactly one owner at a time. Handing it to Submit transfers
// ownership to the viewer, which releases it once it has been uploaded or
// superseded. After Release the picture must not be read again.
type Picture struct {
	Width  int
	Height int
	Format PixelFormat

	// Planes holds the pixel planes. Only Planes[0] is used by the
	// supported packed formats.
	Planes [4][]byte

	// Strides holds the byte stride of each plane.
	Strides [4]int

	// Tag is an opaque value for the picture's creator.
	Tag any

	release  func(*Picture)
	released atomic.Bool
}

// NewPicture wraps caller-owned planes in a Picture. The release function,
// if non-nil, is called exactly once when the picture is released.
func NewPicture(width, height int, format PixelFormat, planes [4][]byte, strides [4]int, release func(*Picture)) (*Picture, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return &Picture{
		Width:   width,
		Height:  height,
		Format:  format,
		Planes:  planes,
		Strides: strides,
		release: release,
	}, nil
}

// AllocPicture allocates a picture with a single plane whose rows are padded
// to a 4-byte boundary. The buffer is zeroed only if zeroFill is set;
// otherwise its content is unspecified.
//
// The returned picture's release hands the buffer back to an internal pool.
func AllocPicture(width, height int, format PixelFormat, zeroFill bool) (*Picture, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	stride := format.Stride(width)
	buf := defaultPool.get(stride * height)
	if zeroFill {
		clear(buf)
	}

	p := &Picture{
		Width:   width,
		Height:  height,
		Format:  format,
		release: releaseToPool,
	}
	p.Planes[0] = buf
	p.Strides[0] = stride
	return p, nil
}

// releaseToPool is the default release of pictures from AllocPicture.
func releaseToPool(p *Picture) {
	defaultPool.put(p.Planes[0])
	p.Planes[0] = nil
}

// Release invokes the picture's release function. Only the first call has an
// effect; later calls return ErrReleased.
func (p *Picture) Release() error {
	if p == nil {
		return nil
	}
	if p.released.Swap(true) {
		return ErrReleased
	}
	if p.release != nil {
		p.release(p)
	}
	return nil
}

// Released reports whether Release has been called.
func (p *Picture) Released() bool {
	return p.released.Load()
}

// Pix returns the first plane and its stride.
func (p *Picture) Pix() ([]byte, int) {
	return p.Planes[0], p.Strides[0]
}

// aspect returns width divided by height, or 1 for an empty picture.
func (p *Picture) aspect() float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return 1
	}
	return float64(p.Width) / float64(p.Height)
}

// releasePicture releases p and logs a double release instead of failing,
// since release runs on the render goroutine with nowhere to report to.
func releasePicture(p *Picture) {
	if err := p.Release(); err != nil {
		Logger().Warn("sview: release failed", "err", err)
	}
}
