// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import "gioui.org/glsafe/internal/gl"

// StateCache records the objects bound on a current context, to skip
// binding calls that would not change anything. The recorded state is
// only correct as long as every binding change goes through this
// package.
type StateCache struct {
	arrayBuf gl.Buffer
	elemBuf  gl.Buffer
	prog     gl.Program
}

// Clear forgets all bindings. It must be called whenever the bindings
// may have changed without the cache's knowledge.
func (s *StateCache) Clear() {
	*s = StateCache{}
}

// ArrayBuffer returns the name of the buffer recorded as bound to
// GL_ARRAY_BUFFER, or 0.
func (s *StateCache) ArrayBuffer() uint {
	return s.arrayBuf.V
}

// ElementArrayBuffer returns the name of the buffer recorded as bound to
// GL_ELEMENT_ARRAY_BUFFER, or 0.
func (s *StateCache) ElementArrayBuffer() uint {
	return s.elemBuf.V
}

// Program returns the name of the program recorded in use, or 0.
func (s *StateCache) Program() uint {
	return s.prog.V
}

func (s *StateCache) buffer(target gl.Enum) *gl.Buffer {
	switch target {
	case gl.ARRAY_BUFFER:
		return &s.arrayBuf
	case gl.ELEMENT_ARRAY_BUFFER:
		return &s.elemBuf
	default:
		panic("unknown buffer target")
	}
}

func (s *StateCache) bindBuffer(f gl.Functions, target gl.Enum, buf gl.Buffer) {
	bound := s.buffer(target)
	if buf.Equal(*bound) {
		return
	}
	f.BindBuffer(target, buf)
	*bound = buf
}

// forgetBuffer clears the binding of target if it records buf.
func (s *StateCache) forgetBuffer(target gl.Enum, buf gl.Buffer) {
	if bound := s.buffer(target); buf.Equal(*bound) {
		*bound = gl.Buffer{}
	}
}

// resetBuffer clears the binding of target.
func (s *StateCache) resetBuffer(target gl.Enum) {
	*s.buffer(target) = gl.Buffer{}
}

func (s *StateCache) useProgram(f gl.Functions, p gl.Program) {
	if p.Equal(s.prog) {
		return
	}
	f.UseProgram(p)
	s.prog = p
}

func (s *StateCache) forgetProgram(p gl.Program) {
	if p.Equal(s.prog) {
		s.prog = gl.Program{}
	}
}

// diff compares s with the native state.
func (s *StateCache) diff(native StateCache) error {
	var mismatches []BindingMismatch
	check := func(binding string, cached, native uint) {
		if cached != native {
			mismatches = append(mismatches, BindingMismatch{Binding: binding, Cached: cached, Native: native})
		}
	}
	check("array buffer", s.arrayBuf.V, native.arrayBuf.V)
	check("element array buffer", s.elemBuf.V, native.elemBuf.V)
	check("program", s.prog.V, native.prog.V)
	if len(mismatches) == 0 {
		return nil
	}
	return &StateMismatchError{Mismatches: mismatches}
}
