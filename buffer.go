// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"runtime"

	"go.uber.org/zap"

	"gioui.org/glsafe/internal/byteslice"
	"gioui.org/glsafe/internal/gl"
)

// BufferTarget selects the binding point of a buffer.
type BufferTarget interface {
	target() gl.Enum
}

type (
	// ArrayBufferTarget is GL_ARRAY_BUFFER, for vertex data.
	ArrayBufferTarget struct{}
	// ElementArrayBufferTarget is GL_ELEMENT_ARRAY_BUFFER, for indices.
	ElementArrayBufferTarget struct{}
)

// CurrentBuffer is a buffer usable on the thread of its CurrentContext.
type CurrentBuffer[T BufferTarget] struct {
	currentObject
}

// AsyncBuffer is a buffer that may be passed between goroutines. It must
// be converted back with ToCurrent before it is garbage collected.
type AsyncBuffer[T BufferTarget] struct {
	asyncObject
}

type (
	CurrentArrayBuffer        = CurrentBuffer[ArrayBufferTarget]
	AsyncArrayBuffer          = AsyncBuffer[ArrayBufferTarget]
	CurrentElementArrayBuffer = CurrentBuffer[ElementArrayBufferTarget]
	AsyncElementArrayBuffer   = AsyncBuffer[ElementArrayBufferTarget]
)

const bufferKind = "buffer"

func (ArrayBufferTarget) target() gl.Enum {
	return gl.ARRAY_BUFFER
}

func (ElementArrayBufferTarget) target() gl.Enum {
	return gl.ELEMENT_ARRAY_BUFFER
}

// NewBuffer creates a buffer for the binding point T.
func NewBuffer[T BufferTarget](cc *CurrentContext) (*CurrentBuffer[T], error) {
	f := cc.funcs()
	obj := f.CreateBuffer()
	if err := cc.api.check("glGenBuffers"); err != nil {
		if obj.Valid() {
			f.DeleteBuffer(obj)
		}
		return nil, err
	}
	if !obj.Valid() {
		return nil, errors.New("glsafe: glGenBuffers failed")
	}
	b := new(CurrentBuffer[T])
	b.init(bufferKind, obj.V, cc)
	cc.logger().Debug("buffer created", zap.Uint("name", obj.V), zap.Uint("target", uint(b.target())))
	return b, nil
}

// NewArrayBuffer creates a GL_ARRAY_BUFFER buffer.
func NewArrayBuffer(cc *CurrentContext) (*CurrentArrayBuffer, error) {
	return NewBuffer[ArrayBufferTarget](cc)
}

// NewElementArrayBuffer creates a GL_ELEMENT_ARRAY_BUFFER buffer.
func NewElementArrayBuffer(cc *CurrentContext) (*CurrentElementArrayBuffer, error) {
	return NewBuffer[ElementArrayBufferTarget](cc)
}

func (b *CurrentBuffer[T]) target() gl.Enum {
	var t T
	return t.target()
}

func (b *CurrentBuffer[T]) obj() gl.Buffer {
	return gl.Buffer{V: b.name}
}

// Bind binds the buffer to its binding point, unless the StateCache
// records it as bound already.
func (b *CurrentBuffer[T]) Bind() {
	f := b.funcs()
	b.cc.cache.bindBuffer(f, b.target(), b.obj())
}

// SetData binds the buffer and replaces its contents with data.
func (b *CurrentBuffer[T]) SetData(data []byte) error {
	f := b.funcs()
	target := b.target()
	b.cc.cache.bindBuffer(f, target, b.obj())
	f.BufferData(target, data, gl.STATIC_DRAW)
	return b.cc.api.check("glBufferData")
}

// SetFloat32s is like SetData for float32 elements.
func (b *CurrentBuffer[T]) SetFloat32s(data []float32) error {
	return b.SetData(byteslice.Slice(data))
}

// SetUint16s is like SetData for uint16 elements.
func (b *CurrentBuffer[T]) SetUint16s(data []uint16) error {
	return b.SetData(byteslice.Slice(data))
}

// ToAsync converts the buffer to an AsyncBuffer, consuming b. The caller
// must call Finish on the CurrentContext first, so that no pending native
// command refers to the buffer.
func (b *CurrentBuffer[T]) ToAsync() *AsyncBuffer[T] {
	b.funcs()
	b.cc.cache.forgetBuffer(b.target(), b.obj())
	name, cc := b.take()
	a := new(AsyncBuffer[T])
	a.init(bufferKind, name, cc.ctx.group)
	runtime.SetFinalizer(a, func(a *AsyncBuffer[T]) { a.leaked() })
	cc.Release()
	return a
}

// Release deletes the buffer. Releasing a consumed buffer does nothing.
func (b *CurrentBuffer[T]) Release() {
	if b.name == 0 {
		return
	}
	f := b.funcs()
	obj := b.obj()
	b.cc.cache.forgetBuffer(b.target(), obj)
	_, cc := b.take()
	f.DeleteBuffer(obj)
	cc.logger().Debug("buffer deleted", zap.Uint("name", obj.V))
	cc.Release()
}

// ToCurrent converts the buffer for use through cc, consuming a. It
// panics if cc's context is not in the buffer's sharing group.
func (a *AsyncBuffer[T]) ToCurrent(cc *CurrentContext) *CurrentBuffer[T] {
	name := a.take(cc)
	runtime.SetFinalizer(a, nil)
	b := new(CurrentBuffer[T])
	b.init(bufferKind, name, cc)
	// Another thread may have rebound the target of a shared buffer.
	cc.cache.resetBuffer(b.target())
	return b
}
