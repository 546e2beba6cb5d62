// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && cgo

package egl

/*
#cgo pkg-config: egl
#cgo CFLAGS: -DEGL_NO_X11

#include <stdlib.h>
#include <EGL/egl.h>
*/
import "C"

import "unsafe"

type (
	_EGLint     = C.EGLint
	_EGLDisplay = C.EGLDisplay
	_EGLConfig  = C.EGLConfig
	_EGLContext = C.EGLContext
	_EGLSurface = C.EGLSurface
)

func eglBindAPI(api _EGLint) bool {
	return C.eglBindAPI(C.EGLenum(api)) == C.EGL_TRUE
}

func eglChooseConfig(disp _EGLDisplay, attribs []_EGLint) (_EGLConfig, bool) {
	var cfg C.EGLConfig
	var ncfg C.EGLint
	if C.eglChooseConfig(disp, &attribs[0], &cfg, 1, &ncfg) != C.EGL_TRUE {
		return nilEGLConfig, false
	}
	if ncfg == 0 {
		return nilEGLConfig, true
	}
	return cfg, true
}

func eglCreateContext(disp _EGLDisplay, cfg _EGLConfig, shareCtx _EGLContext, attribs []_EGLint) _EGLContext {
	return C.eglCreateContext(disp, cfg, shareCtx, &attribs[0])
}

func eglDestroyContext(disp _EGLDisplay, ctx _EGLContext) bool {
	return C.eglDestroyContext(disp, ctx) == C.EGL_TRUE
}

func eglGetCurrentContext() _EGLContext {
	return C.eglGetCurrentContext()
}

func eglGetDefaultDisplay() _EGLDisplay {
	return C.eglGetDisplay(nil)
}

func eglGetError() _EGLint {
	return C.eglGetError()
}

func eglGetProcAddress(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return unsafe.Pointer(C.eglGetProcAddress(cname))
}

func eglInitialize(disp _EGLDisplay) (_EGLint, _EGLint, bool) {
	var maj, min _EGLint
	ret := C.eglInitialize(disp, &maj, &min)
	return maj, min, ret == C.EGL_TRUE
}

func eglMakeCurrent(disp _EGLDisplay, draw, read _EGLSurface, ctx _EGLContext) bool {
	return C.eglMakeCurrent(disp, draw, read, ctx) == C.EGL_TRUE
}

func eglReleaseThread() bool {
	return C.eglReleaseThread() == C.EGL_TRUE
}

func eglTerminate(disp _EGLDisplay) bool {
	return C.eglTerminate(disp) == C.EGL_TRUE
}

func eglQueryString(disp _EGLDisplay, name _EGLint) string {
	return C.GoString(C.eglQueryString(disp, name))
}
