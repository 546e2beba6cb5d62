// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import "errors"

// SharingGroupBackend creates native contexts sharing one object
// namespace. An empty group must keep an internal context alive so that
// its objects survive.
type SharingGroupBackend interface {
	CreateContext() (ContextBackend, error)
}

// SharingGroup is a set of contexts whose objects are usable from any of
// them. Async objects can only be converted to Current on a context of
// the group they were created in.
//
// If the backend implements a Release method, it is called when the
// last reference to the group is released.
type SharingGroup struct {
	refs    refCount
	api     *API
	backend SharingGroupBackend
}

// NewSharingGroup creates a group from a backend.
func NewSharingGroup(api *API, b SharingGroupBackend) *SharingGroup {
	api.refs.acquire()
	g := &SharingGroup{
		api:     api,
		backend: b,
	}
	g.refs.init()
	return g
}

// CreateContext creates a new context in the group.
func (g *SharingGroup) CreateContext() (*Context, error) {
	if g.backend == nil {
		return nil, errors.New("glsafe: the implicit group of a Context cannot create contexts")
	}
	b, err := g.backend.CreateContext()
	if err != nil {
		return nil, &UnknownError{Op: "create context", Err: err}
	}
	c := newContext(g, b)
	g.api.cnf.logger.Debug("context created in sharing group")
	return c, nil
}

// WrapContext adds an existing native context to the group. The context
// must share objects with the contexts created by the group backend.
func (g *SharingGroup) WrapContext(b ContextBackend) *Context {
	return newContext(g, b)
}

// API returns the API the group was created with.
func (g *SharingGroup) API() *API {
	return g.api
}

// Release drops the reference returned by NewSharingGroup.
func (g *SharingGroup) Release() {
	g.release()
}

func (g *SharingGroup) release() {
	if !g.refs.release() {
		return
	}
	if r, ok := g.backend.(releaser); ok {
		r.Release()
	}
	g.api.release()
}
