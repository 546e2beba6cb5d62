// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"fmt"
	"runtime"

	"gioui.org/shader"
	"go.uber.org/zap"

	"gioui.org/glsafe/internal/gl"
)

// CurrentProgram is a program usable on the thread of its CurrentContext.
type CurrentProgram struct {
	currentObject
}

// AsyncProgram is a program that may be passed between goroutines. It
// must be converted back with ToCurrent before it is garbage collected.
type AsyncProgram struct {
	asyncObject
}

const programKind = "program"

// NewProgram creates an empty program.
func NewProgram(cc *CurrentContext) (*CurrentProgram, error) {
	f := cc.funcs()
	obj := f.CreateProgram()
	if err := cc.api.check("glCreateProgram"); err != nil {
		if obj.Valid() {
			f.DeleteProgram(obj)
		}
		return nil, err
	}
	if !obj.Valid() {
		return nil, errors.New("glsafe: glCreateProgram failed")
	}
	p := new(CurrentProgram)
	p.init(programKind, obj.V, cc)
	cc.logger().Debug("program created", zap.Uint("name", obj.V))
	return p, nil
}

// NewProgramFromSources compiles and links a program from shader
// sources, choosing the GLSL dialect from the context's GL_VERSION.
// Attribute locations are bound from the vertex inputs.
func NewProgramFromSources(cc *CurrentContext, vsrc, fsrc shader.Sources) (*CurrentProgram, error) {
	ver, gles, err := gl.ParseGLVersion(cc.funcs().GetString(gl.VERSION))
	if err != nil {
		return nil, fmt.Errorf("glsafe: %v", err)
	}
	vs, fs := vsrc.GLSL100ES, fsrc.GLSL100ES
	if !gles && (ver[0] >= 4 || ver[0] == 3 && ver[1] >= 2) {
		// OpenGL 3.2 Core only accepts glsl 1.50 or newer.
		vs, fs = vsrc.GLSL150, fsrc.GLSL150
	}
	if vs == "" || fs == "" {
		return nil, fmt.Errorf("glsafe: %s, %s: no sources for OpenGL %d.%d", vsrc.Name, fsrc.Name, ver[0], ver[1])
	}
	vert, err := NewVertexShader(cc)
	if err != nil {
		return nil, err
	}
	defer vert.Release()
	if err := vert.Compile(vs); err != nil {
		return nil, fmt.Errorf("%s: %w", vsrc.Name, err)
	}
	frag, err := NewFragmentShader(cc)
	if err != nil {
		return nil, err
	}
	defer frag.Release()
	if err := frag.Compile(fs); err != nil {
		return nil, fmt.Errorf("%s: %w", fsrc.Name, err)
	}
	p, err := NewProgram(cc)
	if err != nil {
		return nil, err
	}
	p.Attach(vert)
	p.Attach(frag)
	for _, inp := range vsrc.Inputs {
		p.BindAttribLocation(inp.Location, inp.Name)
	}
	if err := p.Link(); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (p *CurrentProgram) obj() gl.Program {
	return gl.Program{V: p.name}
}

// Attach attaches a shader. The shader must be current on the same
// CurrentContext.
func (p *CurrentProgram) Attach(s ShaderObject) {
	f := p.funcs()
	obj, cc := s.shader()
	if cc != p.cc {
		panic("glsafe: shader and program belong to different CurrentContexts")
	}
	f.AttachShader(p.obj(), obj)
}

// BindAttribLocation assigns a vertex attribute index before linking.
func (p *CurrentProgram) BindAttribLocation(index int, name string) {
	p.funcs().BindAttribLocation(p.obj(), gl.Attrib(index), name)
}

// Link links the program. The error of a failed link includes the info
// log.
func (p *CurrentProgram) Link() error {
	f := p.funcs()
	obj := p.obj()
	f.LinkProgram(obj)
	if f.GetProgrami(obj, gl.LINK_STATUS) == gl.FALSE {
		return fmt.Errorf("glsafe: program link failed: %s", gl.TrimLog(f.GetProgramInfoLog(obj)))
	}
	return p.cc.api.check("glLinkProgram")
}

// Use makes the program current, unless the StateCache records it in use
// already.
func (p *CurrentProgram) Use() {
	f := p.funcs()
	p.cc.cache.useProgram(f, p.obj())
}

// ToAsync converts the program to an AsyncProgram, consuming p. The
// caller must call Finish on the CurrentContext first.
func (p *CurrentProgram) ToAsync() *AsyncProgram {
	p.funcs()
	p.cc.cache.forgetProgram(p.obj())
	name, cc := p.take()
	a := new(AsyncProgram)
	a.init(programKind, name, cc.ctx.group)
	runtime.SetFinalizer(a, func(a *AsyncProgram) { a.leaked() })
	cc.Release()
	return a
}

// Release deletes the program. Releasing a consumed program does nothing.
func (p *CurrentProgram) Release() {
	if p.name == 0 {
		return
	}
	f := p.funcs()
	obj := p.obj()
	p.cc.cache.forgetProgram(obj)
	_, cc := p.take()
	f.DeleteProgram(obj)
	cc.logger().Debug("program deleted", zap.Uint("name", obj.V))
	cc.Release()
}

// ToCurrent converts the program for use through cc, consuming a.
func (a *AsyncProgram) ToCurrent(cc *CurrentContext) *CurrentProgram {
	name := a.take(cc)
	runtime.SetFinalizer(a, nil)
	p := new(CurrentProgram)
	p.init(programKind, name, cc)
	cc.cache.forgetProgram(p.obj())
	return p
}
