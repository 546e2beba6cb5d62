// SPDX-License-Identifier: Unlicense OR MIT

//go:build !openbsd && !freebsd && !android && !ios && !js

// Package glfw implements glsafe backends with GLFW windows. GLFW
// requires window creation and destruction on the main thread; the
// functions and Release methods of this package must be called there.
package glfw

import (
	"fmt"
	"unsafe"

	glfw3 "github.com/go-gl/glfw/v3.3/glfw"

	"gioui.org/glsafe"
	_ "gioui.org/glsafe/native"
)

// Provider loads the function table from the context of a window. The
// window's context must be current while glsafe.NewAPI runs.
type Provider struct {
	Window *glfw3.Window
}

// Context is the context of a GLFW window.
type Context struct {
	w     *glfw3.Window
	owned bool
}

// SharingGroup creates hidden windows whose contexts share objects with
// a hidden root window. The root keeps the objects alive while the group
// has no contexts.
type SharingGroup struct {
	root *glfw3.Window
}

type apiBackend struct{}

var (
	_ glsafe.APIProvider         = (*Provider)(nil)
	_ glsafe.ContextBackend      = (*Context)(nil)
	_ glsafe.SharingGroupBackend = (*SharingGroup)(nil)
)

func (p *Provider) GetProcAddress(name string) unsafe.Pointer {
	return glfw3.GetProcAddress(name)
}

func (p *Provider) Backend() (glsafe.APIBackend, error) {
	if p.Window == nil {
		return nil, fmt.Errorf("glfw: nil window")
	}
	return apiBackend{}, nil
}

func (apiBackend) ClearCurrent() error {
	glfw3.DetachCurrentContext()
	return nil
}

// NewContext wraps the context of an existing window. The window is
// not destroyed by Release.
func NewContext(w *glfw3.Window) *Context {
	return &Context{w: w}
}

// Window returns the window owning the context.
func (c *Context) Window() *glfw3.Window {
	return c.w
}

func (c *Context) IsCurrent() bool {
	return glfw3.GetCurrentContext() == c.w
}

func (c *Context) MakeCurrent() error {
	c.w.MakeContextCurrent()
	return nil
}

func (c *Context) Release() {
	if c.owned {
		c.w.Destroy()
	}
}

// NewSharingGroup creates a group. If share is not nil, the group shares
// objects with its context as well.
func NewSharingGroup(share *glfw3.Window) (*SharingGroup, error) {
	root, err := hiddenWindow(share)
	if err != nil {
		return nil, err
	}
	return &SharingGroup{root: root}, nil
}

func (g *SharingGroup) CreateContext() (glsafe.ContextBackend, error) {
	w, err := hiddenWindow(g.root)
	if err != nil {
		return nil, err
	}
	return &Context{w: w, owned: true}, nil
}

func (g *SharingGroup) Release() {
	g.root.Destroy()
}

// hiddenWindow creates an invisible window with the current window
// hints, sharing objects with share.
func hiddenWindow(share *glfw3.Window) (*glfw3.Window, error) {
	glfw3.WindowHint(glfw3.Visible, glfw3.False)
	defer glfw3.WindowHint(glfw3.Visible, glfw3.True)
	w, err := glfw3.CreateWindow(1, 1, "", nil, share)
	if err != nil {
		return nil, fmt.Errorf("glfw: create window: %v", err)
	}
	return w, nil
}
