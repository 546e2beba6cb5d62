// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"fmt"
	"strings"

	"gioui.org/glsafe/internal/gl"
)

// ErrAPIAlreadyExists is returned by NewAPI while another API is alive.
var ErrAPIAlreadyExists = errors.New("glsafe: an API already exists")

// GLError is a native error reported by glGetError.
type GLError struct {
	// Op is the native call that failed.
	Op   string
	Code uint
}

// UnknownError wraps a failure reported by a backend.
type UnknownError struct {
	Op  string
	Err error
}

// StateMismatchError describes the bindings whose cached value did not
// match the native state.
type StateMismatchError struct {
	Mismatches []BindingMismatch
}

// BindingMismatch is a binding whose cached and native values differ.
type BindingMismatch struct {
	Binding string
	Cached  uint
	Native  uint
}

func (e *GLError) Error() string {
	return fmt.Sprintf("glsafe: %s: %s", e.Op, gl.ErrorString(gl.Enum(e.Code)))
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("glsafe: %s: %v", e.Op, e.Err)
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

func (e *StateMismatchError) Error() string {
	var b strings.Builder
	b.WriteString("glsafe: state cache out of sync:")
	for i, m := range e.Mismatches {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, " %s cached %d native %d", m.Binding, m.Cached, m.Native)
	}
	return b.String()
}

func glErr(f gl.Functions, op string) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return &GLError{Op: op, Code: uint(st)}
	}
	return nil
}
