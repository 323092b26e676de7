// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/sview"
)

// Common errors returned by Device operations.
var (
	// ErrUnknownTexture is returned for a texture ID the device never issued.
	ErrUnknownTexture = errors.New("soft: unknown texture")

	// ErrShortUpload is returned when upload data is smaller than its
	// dimensions require.
	ErrShortUpload = errors.New("soft: upload data too small")
)

// texture is a device-side copy of an uploaded picture.
type texture struct {
	img    draw.Image
	format gputypes.TextureFormat
}

// Device is a software sview.Device.
type Device struct {
	frame    *image.RGBA
	textures []*texture
	scaler   xdraw.Scaler
	uploads  int
}

// NewDevice creates a device that scales textures with approximate
// bilinear filtering.
func NewDevice() *Device {
	return &Device{scaler: xdraw.ApproxBiLinear}
}

// SetScaler replaces the texture scaler, for example with
// xdraw.NearestNeighbor for pixel-exact output.
func (d *Device) SetScaler(s xdraw.Scaler) {
	d.scaler = s
}

// NewTexture allocates an empty texture.
func (d *Device) NewTexture() (sview.TextureID, error) {
	d.textures = append(d.textures, &texture{})
	return sview.TextureID(len(d.textures)), nil
}

func (d *Device) lookup(id sview.TextureID) (*texture, error) {
	if id == 0 || int(id) > len(d.textures) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	return d.textures[id-1], nil
}

// Upload converts u into the texture's storage format.
func (d *Device) Upload(id sview.TextureID, u sview.Upload) error {
	tex, err := d.lookup(id)
	if err != nil {
		return err
	}
	bpp := u.Layout.BytesPerPixel()
	if u.Height > 0 && len(u.Pix) < u.Stride*(u.Height-1)+u.Width*bpp {
		return fmt.Errorf("%w: %d bytes for %dx%d stride %d", ErrShortUpload, len(u.Pix), u.Width, u.Height, u.Stride)
	}

	r := image.Rect(0, 0, u.Width, u.Height)
	tex.format = u.Layout.TextureFormat()
	if u.Layout == sview.LayoutLuminance {
		g := image.NewGray(r)
		for y := range u.Height {
			copy(g.Pix[y*g.Stride:y*g.Stride+u.Width], u.Pix[y*u.Stride:])
		}
		tex.img = g
		d.uploads++
		return nil
	}

	img := image.NewNRGBA(r)
	for y := range u.Height {
		src := u.Pix[y*u.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := range u.Width {
			s := src[x*bpp:]
			o := dst[x*4 : x*4+4]
			switch u.Layout {
			case sview.LayoutBGRA:
				o[0], o[1], o[2], o[3] = s[2], s[1], s[0], s[3]
			case sview.LayoutRGB:
				o[0], o[1], o[2], o[3] = s[0], s[1], s[2], 0xff
			default:
				copy(o, s[:4])
			}
		}
	}
	tex.img = img
	d.uploads++
	return nil
}

// BeginFrame clears the frame to opaque black, reallocating it on resize.
func (d *Device) BeginFrame(width, height int) error {
	r := image.Rect(0, 0, max(width, 0), max(height, 0))
	if d.frame == nil || d.frame.Rect != r {
		d.frame = image.NewRGBA(r)
	}
	draw.Draw(d.frame, r, image.NewUniform(color.Black), image.Point{}, draw.Src)
	return nil
}

// DrawTexture scales the texture over dst and composites it onto the frame.
func (d *Device) DrawTexture(id sview.TextureID, dst image.Rectangle, tint color.NRGBA) error {
	tex, err := d.lookup(id)
	if err != nil {
		return err
	}
	if tex.img == nil || d.frame == nil || dst.Empty() {
		return nil
	}
	if tint == (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		d.scaler.Scale(d.frame, dst, tex.img, tex.img.Bounds(), draw.Over, nil)
		return nil
	}

	tmp := image.NewNRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	d.scaler.Scale(tmp, tmp.Rect, tex.img, tex.img.Bounds(), draw.Src, nil)
	for i := 0; i < len(tmp.Pix); i += 4 {
		tmp.Pix[i+0] = uint8(uint16(tmp.Pix[i+0]) * uint16(tint.R) / 0xff)
		tmp.Pix[i+1] = uint8(uint16(tmp.Pix[i+1]) * uint16(tint.G) / 0xff)
		tmp.Pix[i+2] = uint8(uint16(tmp.Pix[i+2]) * uint16(tint.B) / 0xff)
		tmp.Pix[i+3] = uint8(uint16(tmp.Pix[i+3]) * uint16(tint.A) / 0xff)
	}
	draw.Draw(d.frame, dst, tmp, image.Point{}, draw.Over)
	return nil
}

// DrawLines draws one-pixel lines. Axis-aligned lines are alpha blended;
// other lines are plotted without blending.
func (d *Device) DrawLines(lines []sview.Line, c color.NRGBA) error {
	if d.frame == nil {
		return nil
	}
	src := image.NewUniform(c)
	for _, l := range lines {
		switch {
		case l.X0 == l.X1:
			r := image.Rect(l.X0, min(l.Y0, l.Y1), l.X0+1, max(l.Y0, l.Y1)+1)
			draw.Draw(d.frame, r.Intersect(d.frame.Rect), src, image.Point{}, draw.Over)
		case l.Y0 == l.Y1:
			r := image.Rect(min(l.X0, l.X1), l.Y0, max(l.X0, l.X1)+1, l.Y0+1)
			draw.Draw(d.frame, r.Intersect(d.frame.Rect), src, image.Point{}, draw.Over)
		default:
			plot(d.frame, l, c)
		}
	}
	return nil
}

// plot draws l with Bresenham's algorithm.
func plot(img *image.RGBA, l sview.Line, c color.NRGBA) {
	dx, dy := abs(l.X1-l.X0), -abs(l.Y1-l.Y0)
	sx, sy := sign(l.X1-l.X0), sign(l.Y1-l.Y0)
	e := dx + dy
	x, y := l.X0, l.Y0
	for {
		img.Set(x, y, c)
		if x == l.X1 && y == l.Y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Frame returns the frame being composed. It is reused across frames.
func (d *Device) Frame() *image.RGBA {
	return d.frame
}

// Uploads returns the number of texture uploads so far.
func (d *Device) Uploads() int {
	return d.uploads
}

// Textures returns the number of textures allocated so far.
func (d *Device) Textures() int {
	return len(d.textures)
}

// TextureFormat returns the storage format of an uploaded texture.
func (d *Device) TextureFormat(id sview.TextureID) gputypes.TextureFormat {
	tex, err := d.lookup(id)
	if err != nil || tex.img == nil {
		return gputypes.TextureFormatUndefined
	}
	return tex.format
}

// TextureSize returns the size of an uploaded texture.
func (d *Device) TextureSize(id sview.TextureID) image.Point {
	tex, err := d.lookup(id)
	if err != nil || tex.img == nil {
		return image.Point{}
	}
	return tex.img.Bounds().Size()
}
