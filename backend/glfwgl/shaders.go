// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfwgl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// toNDC maps top-left origin pixel coordinates to clip space.
const toNDC = `
uniform vec2 uViewport;

vec4 toNDC(vec2 p) {
	return vec4(p.x / uViewport.x * 2.0 - 1.0, 1.0 - p.y / uViewport.y * 2.0, 0.0, 1.0);
}
`

const quadVertexShader = `#version 330 core
layout(location = 0) in vec2 aPos;
uniform vec4 uRect;
out vec2 vUV;
` + toNDC + `
void main() {
	vUV = aPos;
	gl_Position = toNDC(mix(uRect.xy, uRect.zw, aPos));
}
`

const quadFragmentShader = `#version 330 core
in vec2 vUV;
uniform sampler2D uTex;
uniform vec4 uTint;
out vec4 fragColor;

void main() {
	fragColor = texture(uTex, vUV) * uTint;
}
`

const lineVertexShader = `#version 330 core
layout(location = 0) in vec2 aPos;
` + toNDC + `
void main() {
	gl_Position = toNDC(aPos);
}
`

const lineFragmentShader = `#version 330 core
uniform vec4 uColor;
out vec4 fragColor;

void main() {
	fragColor = uColor;
}
`

// buildProgram compiles and links a vertex and fragment shader pair.
func buildProgram(vertex, fragment string) (uint32, error) {
	vs, err := compileShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prog, n, nil, gl.Str(msg))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: link: %s", ErrShader, strings.TrimRight(msg, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(sh, n, nil, gl.Str(msg))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%w: compile: %s", ErrShader, strings.TrimRight(msg, "\x00"))
	}
	return sh, nil
}

// uniform returns the location of a named uniform.
func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}
