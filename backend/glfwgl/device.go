// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfwgl

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gogpu/sview"
)

// Common errors returned by the OpenGL device.
var (
	// ErrShader is returned when a built-in shader fails to compile or link.
	ErrShader = errors.New("glfwgl: shader build failed")

	// ErrStride is returned for rows whose stride OpenGL cannot unpack.
	ErrStride = errors.New("glfwgl: unsupported row stride")

	// ErrGL is returned when OpenGL reports an error after a call.
	ErrGL = errors.New("glfwgl: OpenGL error")
)

// device is an sview.Device drawing with OpenGL 3.3 core.
type device struct {
	quadProg     uint32
	quadVao      uint32
	quadVbo      uint32
	quadViewport int32
	quadRect     int32
	quadTex      int32
	quadTint     int32

	lineProg     uint32
	lineVao      uint32
	lineVbo      uint32
	lineViewport int32
	lineColor    int32
	lineData     []float32

	textures []uint32
	width    int
	height   int
}

// newDevice builds the shader programs and vertex buffers. The GL context
// must be current.
func newDevice() (*device, error) {
	d := &device{}
	var err error

	d.quadProg, err = buildProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, err
	}
	d.lineProg, err = buildProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		gl.DeleteProgram(d.quadProg)
		return nil, err
	}

	d.quadViewport = uniform(d.quadProg, "uViewport")
	d.quadRect = uniform(d.quadProg, "uRect")
	d.quadTex = uniform(d.quadProg, "uTex")
	d.quadTint = uniform(d.quadProg, "uTint")
	d.lineViewport = uniform(d.lineProg, "uViewport")
	d.lineColor = uniform(d.lineProg, "uColor")

	d.initQuad()
	d.initLines()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	return d, nil
}

func (d *device) initQuad() {
	quad := []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 0,
		1, 1,
		0, 1,
	}
	gl.GenVertexArrays(1, &d.quadVao)
	gl.BindVertexArray(d.quadVao)
	gl.GenBuffers(1, &d.quadVbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
}

func (d *device) initLines() {
	gl.GenVertexArrays(1, &d.lineVao)
	gl.BindVertexArray(d.lineVao)
	gl.GenBuffers(1, &d.lineVbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.lineVbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
}

// NewTexture allocates a texture with linear filtering.
func (d *device) NewTexture() (sview.TextureID, error) {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if err := glError("create texture"); err != nil {
		return 0, err
	}
	d.textures = append(d.textures, tex)
	return sview.TextureID(tex), nil
}

var (
	swizzleIdentity  = [4]int32{gl.RED, gl.GREEN, gl.BLUE, gl.ALPHA}
	swizzleLuminance = [4]int32{gl.RED, gl.RED, gl.RED, gl.ONE}
)

// Upload replaces the texture content.
func (d *device) Upload(id sview.TextureID, u sview.Upload) error {
	var internal int32 = gl.RGBA8
	var format uint32
	swizzle := swizzleIdentity
	switch u.Layout {
	case sview.LayoutBGRA:
		format = gl.BGRA
	case sview.LayoutRGB:
		internal, format = gl.RGB8, gl.RGB
	case sview.LayoutLuminance:
		internal, format = gl.R8, gl.RED
		swizzle = swizzleLuminance
	default:
		format = gl.RGBA
	}

	align, rowLength, err := unpackParams(u)
	if err != nil {
		return err
	}

	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
	gl.TexParameteriv(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_RGBA, &swizzle[0])
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, align)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, rowLength)

	var pix any
	if len(u.Pix) > 0 {
		pix = &u.Pix[0]
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(u.Width), int32(u.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	return glError("upload texture")
}

// unpackParams chooses GL_UNPACK_ALIGNMENT and GL_UNPACK_ROW_LENGTH for u.
// Rows padded to four bytes need no row length; other strides must be a
// whole number of pixels.
func unpackParams(u sview.Upload) (align, rowLength int32, err error) {
	bpp := u.Layout.BytesPerPixel()
	if u.Stride == (bpp*u.Width+3)&^3 {
		return 4, 0, nil
	}
	if u.Stride >= bpp*u.Width && u.Stride%bpp == 0 {
		return 1, int32(u.Stride / bpp), nil
	}
	return 0, 0, fmt.Errorf("%w: stride %d for width %d at %d bytes per pixel", ErrStride, u.Stride, u.Width, bpp)
}

// BeginFrame sets the viewport and clears to opaque black.
func (d *device) BeginFrame(width, height int) error {
	d.width, d.height = max(width, 1), max(height, 1)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

// DrawTexture draws the texture stretched over dst.
func (d *device) DrawTexture(id sview.TextureID, dst image.Rectangle, tint color.NRGBA) error {
	gl.UseProgram(d.quadProg)
	gl.BindVertexArray(d.quadVao)
	gl.Uniform2f(d.quadViewport, float32(d.width), float32(d.height))
	gl.Uniform4f(d.quadRect, float32(dst.Min.X), float32(dst.Min.Y), float32(dst.Max.X), float32(dst.Max.Y))
	gl.Uniform4f(d.quadTint, unit(tint.R), unit(tint.G), unit(tint.B), unit(tint.A))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(d.quadTex, 0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	return glError("draw texture")
}

// DrawLines draws the segments through pixel centres.
func (d *device) DrawLines(lines []sview.Line, c color.NRGBA) error {
	if len(lines) == 0 {
		return nil
	}
	d.lineData = d.lineData[:0]
	for _, l := range lines {
		d.lineData = append(d.lineData,
			float32(l.X0)+0.5, float32(l.Y0)+0.5,
			float32(l.X1)+0.5, float32(l.Y1)+0.5)
	}

	gl.UseProgram(d.lineProg)
	gl.BindVertexArray(d.lineVao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.lineVbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.lineData)*4, gl.Ptr(d.lineData), gl.STREAM_DRAW)
	gl.Uniform2f(d.lineViewport, float32(d.width), float32(d.height))
	gl.Uniform4f(d.lineColor, unit(c.R), unit(c.G), unit(c.B), unit(c.A))
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)*2))
	return glError("draw lines")
}

// close deletes every GL object the device created.
func (d *device) close() {
	if len(d.textures) > 0 {
		gl.DeleteTextures(int32(len(d.textures)), &d.textures[0])
		d.textures = nil
	}
	gl.DeleteBuffers(1, &d.quadVbo)
	gl.DeleteBuffers(1, &d.lineVbo)
	gl.DeleteVertexArrays(1, &d.quadVao)
	gl.DeleteVertexArrays(1, &d.lineVao)
	gl.DeleteProgram(d.quadProg)
	gl.DeleteProgram(d.lineProg)
}

func unit(v uint8) float32 {
	return float32(v) / 0xff
}

// glError converts a pending OpenGL error into an error.
func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%w: %s: 0x%04x", ErrGL, op, code)
	}
	return nil
}
