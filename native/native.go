// SPDX-License-Identifier: Unlicense OR MIT

// Package native implements the glsafe function table with
// github.com/go-gl/gl. Import it for its side effect:
//
//	import _ "gioui.org/glsafe/native"
package native

import (
	"fmt"
	"strings"
	"unsafe"

	gogl "github.com/go-gl/gl/v3.3-core/gl"

	"gioui.org/glsafe/internal/gl"
)

type functions struct{}

func init() {
	gl.Register(load)
}

func load(getProcAddress func(name string) unsafe.Pointer) (gl.Functions, error) {
	if _, err := gl.Resolve(getProcAddress); err != nil {
		return nil, err
	}
	if err := gogl.InitWithProcAddrFunc(getProcAddress); err != nil {
		return nil, fmt.Errorf("native: %v", err)
	}
	return new(functions), nil
}

func (f *functions) CreateBuffer() gl.Buffer {
	var buf uint32
	gogl.GenBuffers(1, &buf)
	return gl.Buffer{V: uint(buf)}
}

func (f *functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	gogl.BindBuffer(uint32(target), uint32(b.V))
}

func (f *functions) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	var p unsafe.Pointer
	if len(src) > 0 {
		p = gogl.Ptr(src)
	}
	gogl.BufferData(uint32(target), len(src), p, uint32(usage))
}

func (f *functions) DeleteBuffer(b gl.Buffer) {
	buf := uint32(b.V)
	gogl.DeleteBuffers(1, &buf)
}

func (f *functions) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader{V: uint(gogl.CreateShader(uint32(ty)))}
}

func (f *functions) ShaderSource(s gl.Shader, src string) {
	csrc, free := gogl.Strs(src + "\x00")
	defer free()
	gogl.ShaderSource(uint32(s.V), 1, csrc, nil)
}

func (f *functions) CompileShader(s gl.Shader) {
	gogl.CompileShader(uint32(s.V))
}

func (f *functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var i int32
	gogl.GetShaderiv(uint32(s.V), uint32(pname), &i)
	return int(i)
}

func (f *functions) GetShaderInfoLog(s gl.Shader) string {
	var logLength int32
	gogl.GetShaderiv(uint32(s.V), gogl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gogl.GetShaderInfoLog(uint32(s.V), logLength, nil, gogl.Str(log))
	return log[:logLength]
}

func (f *functions) DeleteShader(s gl.Shader) {
	gogl.DeleteShader(uint32(s.V))
}

func (f *functions) CreateProgram() gl.Program {
	return gl.Program{V: uint(gogl.CreateProgram())}
}

func (f *functions) AttachShader(p gl.Program, s gl.Shader) {
	gogl.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	gogl.BindAttribLocation(uint32(p.V), uint32(a), gogl.Str(name+"\x00"))
}

func (f *functions) LinkProgram(p gl.Program) {
	gogl.LinkProgram(uint32(p.V))
}

func (f *functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	var i int32
	gogl.GetProgramiv(uint32(p.V), uint32(pname), &i)
	return int(i)
}

func (f *functions) GetProgramInfoLog(p gl.Program) string {
	var logLength int32
	gogl.GetProgramiv(uint32(p.V), gogl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gogl.GetProgramInfoLog(uint32(p.V), logLength, nil, gogl.Str(log))
	return log[:logLength]
}

func (f *functions) UseProgram(p gl.Program) {
	gogl.UseProgram(uint32(p.V))
}

func (f *functions) DeleteProgram(p gl.Program) {
	gogl.DeleteProgram(uint32(p.V))
}

func (f *functions) GetBinding(pname gl.Enum) gl.Object {
	var o int32
	gogl.GetIntegerv(uint32(pname), &o)
	return gl.Object{V: uint(o)}
}

func (f *functions) GetString(pname gl.Enum) string {
	s := gogl.GetString(uint32(pname))
	if s == nil {
		return ""
	}
	return gogl.GoStr(s)
}

func (f *functions) GetError() gl.Enum {
	return gl.Enum(gogl.GetError())
}

func (f *functions) Finish() {
	gogl.Finish()
}

func (f *functions) Flush() {
	gogl.Flush()
}
