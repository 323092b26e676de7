// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package soft provides a headless sview window whose device composes
// frames on the CPU into an *image.RGBA.
//
// It is used for tests, for snapshots from machines without a display, and
// as the frame source for integration/gpucanvas. Textures are kept as
// straight-alpha NRGBA or Gray images and scaled with golang.org/x/image/draw.
//
// # Thread Safety
//
// Device is NOT safe for concurrent use; it belongs to the render goroutine.
// Window.Inject, Window.RequestClose and Window.Snapshot may be called from
// any goroutine.
package soft
