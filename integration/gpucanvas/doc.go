// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpucanvas presents frames composed by the sview software backend
// in a gogpu window.
//
// The data flow is:
//
//	sview render loop -> soft.Device frame (CPU) -> GPU Texture -> Window
//
// A Canvas is fed frames with Update, typically from soft.Window.OnSwap,
// and drawn from the gogpu draw callback with RenderTo:
//
//	canvas, err := gpucanvas.Attach(win, app.GPUContextProvider())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Thread Safety
//
// Update may be called from the sview render goroutine while RenderTo runs
// on the gogpu draw goroutine; the latest frame is handed over under a
// mutex. Close must not race with RenderTo.
//
// # Performance Notes
//
//   - The texture is created lazily on the first RenderTo
//   - Dirty tracking skips uploads when no new frame arrived
//   - A size change recreates the texture; the old one is destroyed only
//     after the replacement upload has completed
package gpucanvas
