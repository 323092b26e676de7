package sview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPixelFormat(t *testing.T) {
	tests := []struct {
		format  PixelFormat
		name    string
		bpp     int
		texture gputypes.TextureFormat
	}{
		{FormatRGBA, "RGBA", 4, gputypes.TextureFormatRGBA8Unorm},
		{FormatBGRA, "BGRA", 4, gputypes.TextureFormatRGBA8Unorm},
		{FormatRGB, "RGB", 3, gputypes.TextureFormatRGBA8Unorm},
		{FormatIntensity, "Intensity", 1, gputypes.TextureFormatR8Unorm},
		{PixelFormat(9), "PixelFormat(9)", 0, gputypes.TextureFormatUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.format.BytesPerPixel(); got != tt.bpp {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.bpp)
			}
			if got := tt.format.TextureFormat(); got != tt.texture {
				t.Errorf("TextureFormat() = %v, want %v", got, tt.texture)
			}
			if got := tt.format.IsValid(); got != (tt.bpp > 0) {
				t.Errorf("IsValid() = %v", got)
			}
		})
	}
}

func TestPixelFormatStride(t *testing.T) {
	tests := []struct {
		format PixelFormat
		width  int
		want   int
	}{
		{FormatRGBA, 3, 12},
		{FormatBGRA, 1, 4},
		{FormatRGB, 3, 12},
		{FormatRGB, 4, 12},
		{FormatRGB, 5, 16},
		{FormatIntensity, 5, 8},
		{FormatIntensity, 8, 8},
		{FormatIntensity, 0, 0},
	}
	for _, tt := range tests {
		if got := tt.format.Stride(tt.width); got != tt.want {
			t.Errorf("%v.Stride(%d) = %d, want %d", tt.format, tt.width, got, tt.want)
		}
	}
}

func TestAllocPictureZeroFill(t *testing.T) {
	// Dirty a pooled buffer of the same size first.
	dirty, err := AllocPicture(10, 10, FormatRGBA, false)
	if err != nil {
		t.Fatalf("AllocPicture() error = %v", err)
	}
	for i := range dirty.Planes[0] {
		dirty.Planes[0][i] = 0xff
	}
	if err := dirty.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	p, err := AllocPicture(10, 10, FormatRGBA, true)
	if err != nil {
		t.Fatalf("AllocPicture() error = %v", err)
	}
	defer p.Release()

	pix, stride := p.Pix()
	if stride != 40 {
		t.Errorf("stride = %d, want 40", stride)
	}
	if len(pix) != 400 {
		t.Fatalf("len(pix) = %d, want 400", len(pix))
	}
	if !bytes.Equal(pix, make([]byte, 400)) {
		t.Error("zero-filled picture has non-zero bytes")
	}
}

func TestAllocPictureStrides(t *testing.T) {
	for _, f := range []PixelFormat{FormatRGBA, FormatBGRA, FormatRGB, FormatIntensity} {
		p, err := AllocPicture(7, 3, f, false)
		if err != nil {
			t.Fatalf("AllocPicture(%v) error = %v", f, err)
		}
		pix, stride := p.Pix()
		if stride%4 != 0 || stride < 7*f.BytesPerPixel() {
			t.Errorf("%v: stride = %d, want a multiple of 4 of at least %d", f, stride, 7*f.BytesPerPixel())
		}
		if len(pix) != stride*3 {
			t.Errorf("%v: len(pix) = %d, want %d", f, len(pix), stride*3)
		}
		if p.Width != 7 || p.Height != 3 || p.Format != f {
			t.Errorf("%v: got %dx%d %v", f, p.Width, p.Height, p.Format)
		}
		_ = p.Release()
	}
}

func TestAllocPictureErrors(t *testing.T) {
	if _, err := AllocPicture(4, 4, PixelFormat(42), false); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unsupported format error = %v, want %v", err, ErrUnsupportedFormat)
	}
	if _, err := AllocPicture(-1, 4, FormatRGBA, false); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("negative width error = %v, want %v", err, ErrInvalidDimensions)
	}
	if _, err := NewPicture(1, 1, formatCount, [4][]byte{}, [4]int{}, nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("NewPicture unsupported format error = %v, want %v", err, ErrUnsupportedFormat)
	}
}

func TestPictureReleaseOnce(t *testing.T) {
	var calls int
	p := countedPicture(t, 2, 2, &calls)

	if p.Released() {
		t.Error("Released() = true before Release")
	}
	if err := p.Release(); err != nil {
		t.Fatalf("first Release() error = %v", err)
	}
	if err := p.Release(); !errors.Is(err, ErrReleased) {
		t.Errorf("second Release() error = %v, want %v", err, ErrReleased)
	}
	if calls != 1 {
		t.Errorf("release function called %d times, want 1", calls)
	}
	if !p.Released() {
		t.Error("Released() = false after Release")
	}

	var nilPic *Picture
	if err := nilPic.Release(); err != nil {
		t.Errorf("nil Release() error = %v", err)
	}
}

func TestAllocPictureReturnsBufferToPool(t *testing.T) {
	// An odd size keeps this bucket private to the test.
	const w, h = 123, 7
	n := FormatIntensity.Stride(w) * h
	before := defaultPool.size(n)

	p, err := AllocPicture(w, h, FormatIntensity, false)
	if err != nil {
		t.Fatalf("AllocPicture() error = %v", err)
	}
	if got := defaultPool.size(n); got != max(before-1, 0) {
		t.Errorf("pool size after alloc = %d, want %d", got, max(before-1, 0))
	}
	_ = p.Release()
	if p.Planes[0] != nil {
		t.Error("plane still referenced after release")
	}
	if got := defaultPool.size(n); got != max(before, 1) {
		t.Errorf("pool size after release = %d, want %d", got, max(before, 1))
	}
}

func TestPictureAspect(t *testing.T) {
	tests := []struct {
		w, h int
		want float64
	}{
		{200, 100, 2},
		{100, 200, 0.5},
		{0, 10, 1},
		{10, 0, 1},
	}
	for _, tt := range tests {
		p := &Picture{Width: tt.w, Height: tt.h}
		if got := p.aspect(); got != tt.want {
			t.Errorf("aspect(%dx%d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestPictureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	img.Set(5, 5, color.NRGBA{R: 0xff, A: 0xff})
	img.Set(7, 6, color.NRGBA{B: 0xff, A: 0xff})

	p, err := PictureFromImage(img)
	if err != nil {
		t.Fatalf("PictureFromImage() error = %v", err)
	}
	defer p.Release()

	if p.Width != 3 || p.Height != 2 || p.Format != FormatRGBA {
		t.Fatalf("picture = %dx%d %v, want 3x2 RGBA", p.Width, p.Height, p.Format)
	}
	pix, stride := p.Pix()
	if got := pix[0:4]; !bytes.Equal(got, []byte{0xff, 0, 0, 0xff}) {
		t.Errorf("pixel (0,0) = %v, want red", got)
	}
	if got := pix[stride+8 : stride+12]; !bytes.Equal(got, []byte{0, 0, 0xff, 0xff}) {
		t.Errorf("pixel (2,1) = %v, want blue", got)
	}
	if got := pix[4:8]; !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("pixel (1,0) = %v, want transparent", got)
	}
}
