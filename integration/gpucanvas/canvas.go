// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sview"
	"github.com/gogpu/sview/backend/soft"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("gpucanvas: canvas is closed")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("gpucanvas: nil DeviceProvider")

	// ErrNoFrame is returned by RenderTo before the first Update.
	ErrNoFrame = errors.New("gpucanvas: no frame")

	// ErrInvalidDrawContext is returned when the created texture cannot be
	// drawn by the draw context.
	ErrInvalidDrawContext = errors.New("gpucanvas: texture is not a gpucontext.Texture")

	// ErrInvalidRenderer is returned when the draw context has no texture creator.
	ErrInvalidRenderer = errors.New("gpucanvas: draw context has no TextureCreator")
)

// textureDestroyer is the interface for destroying textures.
type textureDestroyer interface {
	Destroy()
}

// Canvas uploads the latest composed frame to a GPU texture.
type Canvas struct {
	provider gpucontext.DeviceProvider

	mu      sync.Mutex
	pix     []byte
	width   int
	height  int
	dirty   bool
	resized bool

	texture    any // created on first RenderTo
	oldTexture any // previous texture awaiting deferred destruction
	closed     bool
}

// New creates a Canvas presenting through provider's device.
func New(provider gpucontext.DeviceProvider) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatRGBA8Unorm && f != gputypes.TextureFormatBGRA8Unorm {
		sview.Logger().Warn("gpucanvas: unexpected surface format", "format", f)
	}
	return &Canvas{provider: provider}, nil
}

// Attach creates a Canvas fed by every frame win presents.
func Attach(win *soft.Window, provider gpucontext.DeviceProvider) (*Canvas, error) {
	c, err := New(provider)
	if err != nil {
		return nil, err
	}
	win.OnSwap(c.Update)
	return c, nil
}

// Update copies img as the next frame to present. It has the signature of
// soft.Window.OnSwap callbacks.
func (c *Canvas) Update(img *image.RGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if w != c.width || h != c.height {
		c.width, c.height = w, h
		c.resized = c.texture != nil
	}
	n := w * h * 4
	if cap(c.pix) < n {
		c.pix = make([]byte, n)
	}
	c.pix = c.pix[:n]
	for y := range h {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(c.pix[y*w*4:], src)
	}
	c.dirty = true
}

// Size returns the size of the latest frame.
func (c *Canvas) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// IsDirty reports whether a frame is waiting to be uploaded.
func (c *Canvas) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// flush returns the texture to draw: the current one if nothing changed, an
// updated one, or a pendingTexture placeholder when a new texture is needed.
func (c *Canvas) flush() (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrCanvasClosed
	}
	if c.pix == nil {
		return nil, ErrNoFrame
	}

	// Keep the old texture alive until the replacement has been written;
	// in-flight command buffers may still sample it.
	if c.resized {
		if c.oldTexture != nil {
			destroy(c.oldTexture)
		}
		c.oldTexture = c.texture
		c.texture = nil
		c.resized = false
	}

	if c.texture == nil {
		data := make([]byte, len(c.pix))
		copy(data, c.pix)
		c.dirty = false
		return &pendingTexture{width: c.width, height: c.height, data: data}, nil
	}
	if !c.dirty {
		return c.texture, nil
	}
	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(c.pix); err != nil {
			return nil, fmt.Errorf("gpucanvas: texture update failed: %w", err)
		}
	}
	c.dirty = false
	return c.texture, nil
}

// RenderTo draws the latest frame at the window origin.
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	tex, err := c.flush()
	if err != nil {
		return err
	}

	if pending, isPending := tex.(*pendingTexture); isPending {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("gpucanvas: NewTextureFromRGBA failed: %w", err)
		}

		c.mu.Lock()
		c.texture = realTex
		if c.oldTexture != nil {
			destroy(c.oldTexture)
			c.oldTexture = nil
		}
		c.mu.Unlock()
		tex = realTex
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}
	return dc.DrawTexture(gpuTex, 0, 0)
}

// Close destroys the textures. Close is idempotent.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.oldTexture != nil {
		destroy(c.oldTexture)
		c.oldTexture = nil
	}
	if c.texture != nil {
		destroy(c.texture)
		c.texture = nil
	}
	c.pix = nil
	c.provider = nil
	return nil
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// pendingTexture holds the data for a texture that can only be created once
// a draw context, and with it a TextureCreator, is available.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
