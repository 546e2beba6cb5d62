// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

package egl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/exp/slices"

	"gioui.org/glsafe"
	_ "gioui.org/glsafe/native"
)

// Display is an initialized EGL display with a config for desktop
// OpenGL 3.3 core contexts.
type Display struct {
	disp   _EGLDisplay
	config _EGLConfig
}

// Provider loads the function table through eglGetProcAddress. A
// context of the display must be current while glsafe.NewAPI runs.
type Provider struct {
	Display *Display
}

// Context is a surfaceless EGL context.
type Context struct {
	d   *Display
	ctx _EGLContext
}

// SharingGroup creates contexts sharing objects with a root context.
// The root keeps the objects alive while the group has no contexts.
type SharingGroup struct {
	root *Context
}

type apiBackend struct {
	d *Display
}

var (
	nilEGLDisplay _EGLDisplay
	nilEGLSurface _EGLSurface
	nilEGLContext _EGLContext
	nilEGLConfig  _EGLConfig
)

const (
	_EGL_ALPHA_SIZE                      = 0x3021
	_EGL_BLUE_SIZE                       = 0x3022
	_EGL_CONFIG_CAVEAT                   = 0x3027
	_EGL_CONTEXT_MAJOR_VERSION           = 0x3098
	_EGL_CONTEXT_MINOR_VERSION           = 0x30fb
	_EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT = 0x1
	_EGL_CONTEXT_OPENGL_PROFILE_MASK     = 0x30fd
	_EGL_EXTENSIONS                      = 0x3055
	_EGL_GREEN_SIZE                      = 0x3023
	_EGL_NONE                            = 0x3038
	_EGL_OPENGL_API                      = 0x30a2
	_EGL_OPENGL_BIT                      = 0x8
	_EGL_RED_SIZE                        = 0x3024
	_EGL_RENDERABLE_TYPE                 = 0x3040
	_EGL_SURFACE_TYPE                    = 0x3033
)

var (
	_ glsafe.APIProvider         = (*Provider)(nil)
	_ glsafe.ContextBackend      = (*Context)(nil)
	_ glsafe.SharingGroupBackend = (*SharingGroup)(nil)
)

// NewDisplay initializes the default display.
func NewDisplay() (*Display, error) {
	disp := eglGetDefaultDisplay()
	if disp == nilEGLDisplay {
		return nil, fmt.Errorf("egl: eglGetDisplay(EGL_DEFAULT_DISPLAY) failed: 0x%x", eglGetError())
	}
	if _, _, ok := eglInitialize(disp); !ok {
		return nil, fmt.Errorf("egl: eglInitialize failed: 0x%x", eglGetError())
	}
	d := &Display{disp: disp}
	if err := d.init(); err != nil {
		eglTerminate(disp)
		return nil, err
	}
	return d, nil
}

func (d *Display) init() error {
	exts := strings.Split(eglQueryString(d.disp, _EGL_EXTENSIONS), " ")
	if !slices.Contains(exts, "EGL_KHR_surfaceless_context") {
		return errors.New("egl: EGL_KHR_surfaceless_context not supported")
	}
	if err := bindAPI(); err != nil {
		return err
	}
	attribs := []_EGLint{
		_EGL_RENDERABLE_TYPE, _EGL_OPENGL_BIT,
		// Surfaceless contexts need no surface capabilities.
		_EGL_SURFACE_TYPE, 0,
		_EGL_BLUE_SIZE, 8,
		_EGL_GREEN_SIZE, 8,
		_EGL_RED_SIZE, 8,
		_EGL_ALPHA_SIZE, 8,
		_EGL_CONFIG_CAVEAT, _EGL_NONE,
		_EGL_NONE,
	}
	cfg, ok := eglChooseConfig(d.disp, attribs)
	if !ok {
		return fmt.Errorf("egl: eglChooseConfig failed: 0x%x", eglGetError())
	}
	if cfg == nilEGLConfig {
		return errors.New("egl: eglChooseConfig returned 0 configs")
	}
	d.config = cfg
	return nil
}

// Release terminates the display. Every context of the display must be
// released first.
func (d *Display) Release() {
	eglTerminate(d.disp)
	eglReleaseThread()
}

// NewContext creates a context that shares objects with no other
// context.
func (d *Display) NewContext() (*Context, error) {
	return d.createContext(nilEGLContext)
}

// NewSharingGroup creates a group with a new root context.
func (d *Display) NewSharingGroup() (*SharingGroup, error) {
	root, err := d.createContext(nilEGLContext)
	if err != nil {
		return nil, err
	}
	return &SharingGroup{root: root}, nil
}

func (d *Display) createContext(share _EGLContext) (*Context, error) {
	if err := bindAPI(); err != nil {
		return nil, err
	}
	attribs := []_EGLint{
		_EGL_CONTEXT_MAJOR_VERSION, 3,
		_EGL_CONTEXT_MINOR_VERSION, 3,
		_EGL_CONTEXT_OPENGL_PROFILE_MASK, _EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		_EGL_NONE,
	}
	ctx := eglCreateContext(d.disp, d.config, share, attribs)
	if ctx == nilEGLContext {
		return nil, fmt.Errorf("egl: eglCreateContext failed: 0x%x", eglGetError())
	}
	return &Context{d: d, ctx: ctx}, nil
}

func (p *Provider) GetProcAddress(name string) unsafe.Pointer {
	return eglGetProcAddress(name)
}

func (p *Provider) Backend() (glsafe.APIBackend, error) {
	if p.Display == nil {
		return nil, errors.New("egl: nil display")
	}
	return &apiBackend{d: p.Display}, nil
}

func (b *apiBackend) ClearCurrent() error {
	if err := bindAPI(); err != nil {
		return err
	}
	if !eglMakeCurrent(b.d.disp, nilEGLSurface, nilEGLSurface, nilEGLContext) {
		return fmt.Errorf("egl: eglMakeCurrent error 0x%x", eglGetError())
	}
	return nil
}

// IsCurrent reports whether c is the OpenGL context of the calling
// thread.
func (c *Context) IsCurrent() bool {
	// The current context is tracked per thread and API.
	if bindAPI() != nil {
		return false
	}
	return eglGetCurrentContext() == c.ctx
}

func (c *Context) MakeCurrent() error {
	if err := bindAPI(); err != nil {
		return err
	}
	if !eglMakeCurrent(c.d.disp, nilEGLSurface, nilEGLSurface, c.ctx) {
		return fmt.Errorf("egl: eglMakeCurrent error 0x%x", eglGetError())
	}
	return nil
}

func (c *Context) Release() {
	if c.ctx != nilEGLContext {
		eglDestroyContext(c.d.disp, c.ctx)
		c.ctx = nilEGLContext
	}
}

func (g *SharingGroup) CreateContext() (glsafe.ContextBackend, error) {
	return g.root.d.createContext(g.root.ctx)
}

func (g *SharingGroup) Release() {
	g.root.Release()
}

func bindAPI() error {
	if !eglBindAPI(_EGL_OPENGL_API) {
		return fmt.Errorf("egl: eglBindAPI(EGL_OPENGL_API) failed: 0x%x", eglGetError())
	}
	return nil
}
