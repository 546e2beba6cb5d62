// SPDX-License-Identifier: Unlicense OR MIT

// Package egl implements glsafe backends with surfaceless EGL contexts,
// for rendering without a window system. It requires Linux, cgo and
// the EGL_KHR_surfaceless_context extension.
package egl
