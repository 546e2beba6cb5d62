// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import "sync/atomic"

// refCount counts the owners of a shared object.
type refCount struct {
	n atomic.Int32
}

type releaser interface {
	Release()
}

func (r *refCount) init() {
	r.n.Store(1)
}

func (r *refCount) acquire() {
	if r.n.Add(1) <= 1 {
		panic("glsafe: use of a released object")
	}
}

// release drops a reference and reports whether it was the last.
func (r *refCount) release() bool {
	switch n := r.n.Add(-1); {
	case n < 0:
		panic("glsafe: object released too many times")
	case n == 0:
		return true
	}
	return false
}
