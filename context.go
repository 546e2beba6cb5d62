// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

// ContextBackend is a native context.
type ContextBackend interface {
	// IsCurrent reports whether the context is current on the calling
	// thread.
	IsCurrent() bool
	// MakeCurrent makes the context current on the calling thread. It is
	// only called when IsCurrent reports false.
	MakeCurrent() error
}

// Context is a native context. It cannot issue native calls itself;
// activate it with MakeCurrent.
//
// If the backend implements a Release method, it is called when the
// last reference to the context is released.
type Context struct {
	refs    refCount
	group   *SharingGroup
	backend ContextBackend
}

// NewContext wraps a native context that shares objects with no other
// context.
func NewContext(api *API, b ContextBackend) *Context {
	g := NewSharingGroup(api, nil)
	defer g.release()
	return newContext(g, b)
}

func newContext(g *SharingGroup, b ContextBackend) *Context {
	g.refs.acquire()
	c := &Context{
		group:   g,
		backend: b,
	}
	c.refs.init()
	return c
}

// API returns the API the context was created with.
func (c *Context) API() *API {
	return c.group.api
}

// SharingGroup returns the group of the context. A context created with
// NewContext is the only member of its group.
func (c *Context) SharingGroup() *SharingGroup {
	return c.group
}

// Release drops the reference returned by NewContext or
// SharingGroup.CreateContext.
func (c *Context) Release() {
	c.release()
}

func (c *Context) release() {
	if !c.refs.release() {
		return
	}
	if r, ok := c.backend.(releaser); ok {
		r.Release()
	}
	c.group.release()
}
