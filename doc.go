// SPDX-License-Identifier: Unlicense OR MIT

/*
Package glsafe is a safety layer over OpenGL's implicit per-thread context
state and manually managed object names.

An API is loaded once per process from an APIProvider, typically a window
toolkit with a context current. Contexts wrap the toolkit's native contexts;
MakeCurrent activates one on the calling OS thread and returns the thread's
CurrentContext, which caches bindings to elide redundant state changes.

	runtime.LockOSThread()
	api, err := glsafe.NewAPI(provider)
	...
	ctx := glsafe.NewContext(api, backend)
	cc, err := glsafe.MakeCurrent(ctx)
	...
	defer cc.Release()
	buf, err := glsafe.NewArrayBuffer(cc)
	...
	err = buf.SetFloat32s([]float32{1, 1, -1, 1, -1, -1, 1, -1})

# Current and Async objects

Buffers, shaders and programs exist in one of two modes. Current objects
(CurrentBuffer, CurrentShader, CurrentProgram) are confined to the thread
of their CurrentContext and may issue native calls. Async objects are safe
to hand to other goroutines but cannot be used until converted back with
ToCurrent on a context of the same SharingGroup. Converting consumes the
source; using a consumed object panics, as does garbage collecting an Async
object that was never converted back.

Before ToAsync the caller must call CurrentContext.Finish, so that no
pending native work refers to the object.

Do runs a function on a fresh OS thread with a context current, which is
the simplest way to hand Async objects to a worker.

# Backends

Packages backend/glfw and backend/egl provide APIProvider, ContextBackend
and SharingGroupBackend implementations. Both import package native, which
registers the function table implementation.

# Threads

Every goroutine using a CurrentContext must be locked to its OS thread with
runtime.LockOSThread for as long as it holds the context. Use of a
CurrentContext or a Current object from another thread panics.

A released CurrentContext stays attached to its thread for reuse. A
goroutine about to give up its locked thread calls ForgetThread after its
last Release to drop it.

The binding cache assumes it is the only mutator of the bindings it tracks.
Code issuing native binding calls on its own must call
CurrentContext.VerifyState or StateCache.Clear afterwards.
*/
package glsafe
