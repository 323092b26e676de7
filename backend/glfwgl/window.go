// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfwgl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/sview"
)

// ErrInit is returned when no window or OpenGL context can be created, for
// example because no display is reachable.
var ErrInit = errors.New("glfwgl: cannot initialize window system")

// window is an sview.Window backed by a GLFW window.
type window struct {
	win    *glfw.Window
	dev    *device
	events []sview.Event

	// fbScaleX and fbScaleY convert cursor coordinates, reported in screen
	// units, to framebuffer pixels.
	fbScaleX float64
	fbScaleY float64
}

// Open creates a window with an OpenGL 3.3 core context current on the
// calling thread. It is an sview.WindowOpener.
func Open(title string, width, height int) (sview.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	gw, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	gw.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		gw.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: gl.Init: %v", ErrInit, err)
	}
	sview.Logger().Info("glfwgl: context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	dev, err := newDevice()
	if err != nil {
		gw.Destroy()
		glfw.Terminate()
		return nil, err
	}

	w := &window{win: gw, dev: dev}
	w.updateScale()
	fbw, fbh := gw.GetFramebufferSize()
	w.events = append(w.events, sview.Event{Kind: sview.EventResize, Width: fbw, Height: fbh})

	gw.SetFramebufferSizeCallback(w.onFramebufferSize)
	gw.SetRefreshCallback(w.onRefresh)
	gw.SetCursorPosCallback(w.onCursorPos)
	gw.SetMouseButtonCallback(w.onMouseButton)
	gw.SetCloseCallback(w.onClose)
	return w, nil
}

func (w *window) updateScale() {
	ww, wh := w.win.GetSize()
	fbw, fbh := w.win.GetFramebufferSize()
	w.fbScaleX, w.fbScaleY = 1, 1
	if ww > 0 && wh > 0 {
		w.fbScaleX = float64(fbw) / float64(ww)
		w.fbScaleY = float64(fbh) / float64(wh)
	}
}

func (w *window) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.updateScale()
	w.events = append(w.events, sview.Event{Kind: sview.EventResize, Width: width, Height: height})
}

// onRefresh reports an expose as a resize to the current size.
func (w *window) onRefresh(gw *glfw.Window) {
	fbw, fbh := gw.GetFramebufferSize()
	w.events = append(w.events, sview.Event{Kind: sview.EventResize, Width: fbw, Height: fbh})
}

func (w *window) onCursorPos(_ *glfw.Window, x, y float64) {
	px, py := w.pixel(x, y)
	w.events = append(w.events, sview.Event{Kind: sview.EventMotion, X: px, Y: py})
}

func (w *window) onMouseButton(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	kind := sview.EventPress
	if action == glfw.Release {
		kind = sview.EventRelease
	}
	px, py := w.pixel(gw.GetCursorPos())
	w.events = append(w.events, sview.Event{Kind: kind, X: px, Y: py})
}

func (w *window) onClose(*glfw.Window) {
	w.events = append(w.events, sview.Event{Kind: sview.EventClose})
}

// pixel converts cursor coordinates to framebuffer pixels.
func (w *window) pixel(x, y float64) (int, int) {
	return int(x * w.fbScaleX), int(y * w.fbScaleY)
}

// Device returns the OpenGL device.
func (w *window) Device() sview.Device {
	return w.dev
}

// Size returns the framebuffer size.
func (w *window) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

// PollEvents processes pending window system events without blocking.
func (w *window) PollEvents(dst []sview.Event) []sview.Event {
	glfw.PollEvents()
	dst = append(dst, w.events...)
	w.events = w.events[:0]
	return dst
}

// SwapBuffers presents the frame.
func (w *window) SwapBuffers() error {
	w.win.SwapBuffers()
	return nil
}

// ShouldClose reports whether the user asked to close the window.
func (w *window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// Close releases GL objects, destroys the window and terminates GLFW.
func (w *window) Close() error {
	w.dev.close()
	w.win.Destroy()
	glfw.Terminate()
	return nil
}
