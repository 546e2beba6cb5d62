// SPDX-License-Identifier: Unlicense OR MIT

// Package thread identifies the OS thread running the caller. The
// result is only stable while the calling goroutine is locked to its
// thread with runtime.LockOSThread.
package thread
