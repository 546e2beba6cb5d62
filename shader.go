// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"gioui.org/glsafe/internal/gl"
)

// ShaderType selects the pipeline stage of a shader.
type ShaderType interface {
	shaderType() gl.Enum
}

type (
	// VertexShaderType marks GL_VERTEX_SHADER shaders.
	VertexShaderType struct{}
	// FragmentShaderType marks GL_FRAGMENT_SHADER shaders.
	FragmentShaderType struct{}
)

// CurrentShader is a shader usable on the thread of its CurrentContext.
type CurrentShader[T ShaderType] struct {
	currentObject
}

// AsyncShader is a shader that may be passed between goroutines. It must
// be converted back with ToCurrent before it is garbage collected.
type AsyncShader[T ShaderType] struct {
	asyncObject
}

type (
	CurrentVertexShader   = CurrentShader[VertexShaderType]
	AsyncVertexShader     = AsyncShader[VertexShaderType]
	CurrentFragmentShader = CurrentShader[FragmentShaderType]
	AsyncFragmentShader   = AsyncShader[FragmentShaderType]
)

// ShaderObject is implemented by Current shaders of every type.
type ShaderObject interface {
	shader() (gl.Shader, *CurrentContext)
}

const shaderKind = "shader"

func (VertexShaderType) shaderType() gl.Enum {
	return gl.VERTEX_SHADER
}

func (FragmentShaderType) shaderType() gl.Enum {
	return gl.FRAGMENT_SHADER
}

// NewShader creates an empty shader of type T.
func NewShader[T ShaderType](cc *CurrentContext) (*CurrentShader[T], error) {
	var t T
	f := cc.funcs()
	obj := f.CreateShader(t.shaderType())
	if err := cc.api.check("glCreateShader"); err != nil {
		if obj.Valid() {
			f.DeleteShader(obj)
		}
		return nil, err
	}
	if !obj.Valid() {
		return nil, errors.New("glsafe: glCreateShader failed")
	}
	s := new(CurrentShader[T])
	s.init(shaderKind, obj.V, cc)
	cc.logger().Debug("shader created", zap.Uint("name", obj.V), zap.Uint("type", uint(t.shaderType())))
	return s, nil
}

func NewVertexShader(cc *CurrentContext) (*CurrentVertexShader, error) {
	return NewShader[VertexShaderType](cc)
}

func NewFragmentShader(cc *CurrentContext) (*CurrentFragmentShader, error) {
	return NewShader[FragmentShaderType](cc)
}

func (s *CurrentShader[T]) obj() gl.Shader {
	return gl.Shader{V: s.name}
}

func (s *CurrentShader[T]) shader() (gl.Shader, *CurrentContext) {
	s.funcs()
	return s.obj(), s.cc
}

// Compile sets the source of the shader and compiles it. The error of a
// failed compilation includes the info log.
func (s *CurrentShader[T]) Compile(src string) error {
	f := s.funcs()
	obj := s.obj()
	f.ShaderSource(obj, src)
	f.CompileShader(obj)
	if f.GetShaderi(obj, gl.COMPILE_STATUS) == gl.FALSE {
		return fmt.Errorf("glsafe: shader compilation failed: %s", gl.TrimLog(f.GetShaderInfoLog(obj)))
	}
	return s.cc.api.check("glCompileShader")
}

// ToAsync converts the shader to an AsyncShader, consuming s. The caller
// must call Finish on the CurrentContext first.
func (s *CurrentShader[T]) ToAsync() *AsyncShader[T] {
	s.funcs()
	name, cc := s.take()
	a := new(AsyncShader[T])
	a.init(shaderKind, name, cc.ctx.group)
	runtime.SetFinalizer(a, func(a *AsyncShader[T]) { a.leaked() })
	cc.Release()
	return a
}

// Release deletes the shader. Releasing a consumed shader does nothing.
func (s *CurrentShader[T]) Release() {
	if s.name == 0 {
		return
	}
	f := s.funcs()
	obj := s.obj()
	_, cc := s.take()
	f.DeleteShader(obj)
	cc.logger().Debug("shader deleted", zap.Uint("name", obj.V))
	cc.Release()
}

// ToCurrent converts the shader for use through cc, consuming a.
func (a *AsyncShader[T]) ToCurrent(cc *CurrentContext) *CurrentShader[T] {
	name := a.take(cc)
	runtime.SetFinalizer(a, nil)
	s := new(CurrentShader[T])
	s.init(shaderKind, name, cc)
	return s
}
