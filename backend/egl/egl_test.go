// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

package egl

import (
	"runtime"
	"testing"

	"gioui.org/shader"

	"gioui.org/glsafe"
)

var (
	vertSrc = shader.Sources{
		Name:   "quad.vert",
		Inputs: []shader.InputLocation{{Name: "pos", Location: 0}},
		GLSL150: `#version 150
in vec2 pos;
void main() {
	gl_Position = vec4(pos, 0.0, 1.0);
}
`,
	}
	fragSrc = shader.Sources{
		Name: "quad.frag",
		GLSL150: `#version 150
out vec4 fragColor;
void main() {
	fragColor = vec4(1.0);
}
`,
	}
)

func newTestDisplay(t *testing.T) *Display {
	t.Helper()
	d, err := NewDisplay()
	if err != nil {
		t.Skipf("EGL not available: %v", err)
	}
	t.Cleanup(d.Release)
	return d
}

func TestSurfaceless(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	d := newTestDisplay(t)
	groupBackend, err := d.NewSharingGroup()
	if err != nil {
		t.Skipf("no OpenGL 3.3 core context: %v", err)
	}
	ctxBackend, err := groupBackend.CreateContext()
	if err != nil {
		groupBackend.Release()
		t.Fatal(err)
	}
	if err := ctxBackend.MakeCurrent(); err != nil {
		groupBackend.Release()
		t.Fatal(err)
	}
	api, err := glsafe.NewAPI(&Provider{Display: d})
	if err != nil {
		groupBackend.Release()
		t.Fatal(err)
	}
	defer api.Release()
	group := glsafe.NewSharingGroup(api, groupBackend)
	defer group.Release()
	ctx := group.WrapContext(ctxBackend)
	defer ctx.Release()
	worker, err := group.CreateContext()
	if err != nil {
		t.Fatal(err)
	}
	defer worker.Release()

	cc, err := glsafe.MakeCurrent(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer cc.Release()
	prog, err := glsafe.NewProgramFromSources(cc, vertSrc, fragSrc)
	if err != nil {
		t.Fatal(err)
	}
	defer prog.Release()
	prog.Use()
	buf, err := glsafe.NewArrayBuffer(cc)
	if err != nil {
		t.Fatal(err)
	}
	buf.Bind()
	if err := cc.VerifyState(); err != nil {
		t.Errorf("native state differs from the cache: %v", err)
	}
	name := buf.Name()
	cc.Finish()
	async := buf.ToAsync()
	err = glsafe.Do(worker, func(wcc *glsafe.CurrentContext) error {
		b := async.ToCurrent(wcc)
		if err := b.SetFloat32s([]float32{1, 1, -1, 1, -1, -1, 1, -1}); err != nil {
			b.Release()
			return err
		}
		wcc.Finish()
		async = b.ToAsync()
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	buf = async.ToCurrent(cc)
	defer buf.Release()
	if buf.Name() != name {
		t.Errorf("name after hand-off: got %d, want %d", buf.Name(), name)
	}
	buf.Bind()
	if err := cc.VerifyState(); err != nil {
		t.Errorf("native state differs from the cache: %v", err)
	}
}
