// SPDX-License-Identifier: Unlicense OR MIT

// package glfw doesn't build on OpenBSD and FreeBSD.
//go:build !openbsd && !freebsd && !android && !ios && !js

// Command triangle draws a quad through glsafe in a GLFW window. The
// vertex data is uploaded by a worker goroutine on a second context of
// the window's sharing group.
package main

import (
	"log"
	"runtime"

	"gioui.org/shader"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"gioui.org/glsafe"
	glfwbackend "gioui.org/glsafe/backend/glfw"
)

var (
	quad    = []float32{1, 1, -1, 1, -1, -1, 1, -1}
	indices = []uint16{0, 1, 2, 2, 3, 0}
)

var vertSrc = shader.Sources{
	Name: "quad.vert",
	Inputs: []shader.InputLocation{
		{Name: "pos", Location: 0},
	},
	GLSL100ES: `#version 100
attribute vec2 pos;
void main() {
	gl_Position = vec4(pos*0.5, 0.0, 1.0);
}
`,
	GLSL150: `#version 150
in vec2 pos;
void main() {
	gl_Position = vec4(pos*0.5, 0.0, 1.0);
}
`,
}

var fragSrc = shader.Sources{
	Name: "quad.frag",
	GLSL100ES: `#version 100
precision mediump float;
void main() {
	gl_FragColor = vec4(0.25, 0.5, 1.0, 1.0);
}
`,
	GLSL150: `#version 150
out vec4 fragColor;
void main() {
	fragColor = vec4(0.25, 0.5, 1.0, 1.0);
}
`,
}

func main() {
	// Required by the OpenGL threading model.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(800, 600, "glsafe + GLFW", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	api, err := glsafe.NewAPI(&glfwbackend.Provider{Window: window}, glsafe.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	defer api.Release()
	groupBackend, err := glfwbackend.NewSharingGroup(window)
	if err != nil {
		log.Fatal(err)
	}
	group := glsafe.NewSharingGroup(api, groupBackend)
	defer group.Release()
	winCtx := group.WrapContext(glfwbackend.NewContext(window))
	defer winCtx.Release()
	// Windows must be created on the main thread.
	workerCtx, err := group.CreateContext()
	if err != nil {
		log.Fatal(err)
	}
	defer workerCtx.Release()

	if err := run(window, winCtx, workerCtx); err != nil {
		log.Fatal(err)
	}
}

func run(window *glfw.Window, winCtx, workerCtx *glsafe.Context) error {
	cc, err := glsafe.MakeCurrent(winCtx)
	if err != nil {
		return err
	}
	defer cc.Release()

	// Vertex array objects are not shared between contexts. Bind one
	// before any buffer so that it captures the element array binding.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	defer gl.DeleteVertexArrays(1, &vao)

	prog, err := glsafe.NewProgramFromSources(cc, vertSrc, fragSrc)
	if err != nil {
		return err
	}
	defer prog.Release()
	ibo, err := glsafe.NewElementArrayBuffer(cc)
	if err != nil {
		return err
	}
	defer ibo.Release()
	if err := ibo.SetUint16s(indices); err != nil {
		return err
	}
	vbo, err := glsafe.NewArrayBuffer(cc)
	if err != nil {
		return err
	}
	cc.Finish()
	uploads := make(chan *glsafe.AsyncArrayBuffer)
	errs := make(chan error, 1)
	go upload(workerCtx, vbo.ToAsync(), uploads, errs)
	var async *glsafe.AsyncArrayBuffer
	select {
	case async = <-uploads:
	case err := <-errs:
		return err
	}
	vbo = async.ToCurrent(cc)
	defer vbo.Release()

	vbo.Bind()
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)
	if err := cc.VerifyState(); err != nil {
		log.Printf("triangle: %v", err)
	}
	for !window.ShouldClose() {
		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		prog.Use()
		ibo.Bind()
		gl.DrawElements(gl.TRIANGLES, int32(len(indices)), gl.UNSIGNED_SHORT, nil)
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// upload fills buf with the quad on ctx and hands it back.
func upload(ctx *glsafe.Context, buf *glsafe.AsyncArrayBuffer, done chan<- *glsafe.AsyncArrayBuffer, errs chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	cc, err := glsafe.MakeCurrent(ctx)
	if err != nil {
		errs <- err
		return
	}
	defer cc.Release()
	b := buf.ToCurrent(cc)
	if err := b.SetFloat32s(quad); err != nil {
		b.Release()
		errs <- err
		return
	}
	cc.Finish()
	done <- b.ToAsync()
}
