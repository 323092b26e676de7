// Package sview provides a live picture viewer for Go programs.
//
// # Overview
//
// sview opens a window that shows a grid of pictures, each optionally
// captioned and decorated with a crosshair. Producer goroutines hand pictures
// to the viewer with Submit at any rate; a single render goroutine owns the
// window and the graphics device, and redraws the latest picture of every
// cell each frame. Submissions to the same cell between two frames collapse
// to the last one, so a slow display never blocks a fast producer.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/sview"
//	    "github.com/gogpu/sview/backend/glfwgl"
//	)
//
//	v, err := sview.Create(sview.DefaultConfig().WithTitle("camera"), glfwgl.Open)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//
//	pic, _ := sview.AllocPicture(640, 480, sview.FormatBGRA, false)
//	// fill pic.Planes[0] ...
//	_ = v.Submit(0, 0, pic, "frame 1", sview.FlagCrosshair, 0)
//
// # Ownership
//
// A Picture has one owner. Submit transfers it to the viewer, which releases
// it exactly once: after uploading it, when a newer submission to the same
// cell supersedes it, when the queue limit drops it, or when the viewer
// shuts down.
//
// # Layout
//
// The grid grows to fit the largest column and row submitted so far. Each
// cell keeps its picture's aspect ratio, letterboxed with a 2 pixel margin.
// Captions sit 10 pixels inside the bottom-left corner of the picture.
// Widgets, if any, are listed in the right third of the window and edited by
// dragging horizontally.
//
// # Backends
//
// The render loop talks to a Window and its Device. Package backend/glfwgl
// provides an OpenGL 3.3 window; package backend/soft renders into memory
// for tests and headless use.
//
// # Coordinate System
//
// Window coordinates have their origin at the top-left, with X increasing
// right and Y increasing down.
package sview
