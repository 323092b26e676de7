// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glfwgl opens an sview window with GLFW and draws with OpenGL 3.3
// core profile.
//
// Open is an sview.WindowOpener:
//
//	v, err := sview.Create(sview.DefaultConfig(), glfwgl.Open)
//
// GLFW and OpenGL calls must all happen on one OS thread. The viewer's render
// goroutine locks itself to its thread before calling Open, and every method
// of the returned window and device is called from that goroutine only.
//
// Textures are sampled with linear filtering. BGRA pictures are uploaded
// with GL_BGRA, RGB with GL_RGB, and intensity pictures as GL_RED with a
// swizzle that replicates red into green and blue and forces alpha to one.
package glfwgl
