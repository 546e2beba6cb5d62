// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"gioui.org/glsafe/internal/gl"
	"gioui.org/glsafe/internal/thread"
)

// currents maps OS thread ids to their CurrentContext. An entry whose
// reference count is zero is dormant and is revived by the next
// MakeCurrent on its thread.
var currents sync.Map

// CurrentContext is the context active on one OS thread, together with
// the cache of its bindings. There is at most one CurrentContext per
// thread; every MakeCurrent on a thread returns the same object.
//
// A CurrentContext and the Current objects created from it must only be
// used on the thread that called MakeCurrent.
type CurrentContext struct {
	tid   uint64
	refs  int
	ctx   *Context
	api   *API
	cache StateCache
}

// MakeCurrent activates c on the calling thread and returns the thread's
// CurrentContext with an added reference, to be dropped with Release.
// The caller must be locked to its thread with runtime.LockOSThread.
//
// While references to the thread's CurrentContext are held, MakeCurrent
// may switch to another context of the same sharing group. Switching to
// a context of another group panics.
func MakeCurrent(c *Context) (*CurrentContext, error) {
	tid := thread.ID()
	var cc *CurrentContext
	if v, ok := currents.Load(tid); ok {
		cc = v.(*CurrentContext)
	} else {
		cc = &CurrentContext{tid: tid}
		currents.Store(tid, cc)
	}
	if err := cc.activate(c); err != nil {
		return nil, err
	}
	return cc, nil
}

// ForgetThread drops the dormant CurrentContext of the calling thread.
// Goroutines locked to a thread they are about to give up should call it
// after their last Release, so that the slot does not outlive the thread.
// It panics if the thread's CurrentContext is in use.
func ForgetThread() {
	tid := thread.ID()
	v, ok := currents.Load(tid)
	if !ok {
		return
	}
	if v.(*CurrentContext).refs > 0 {
		panic("glsafe: ForgetThread while the CurrentContext of the thread is in use")
	}
	currents.Delete(tid)
}

// Do runs f on a new goroutine locked to its own OS thread, with c
// current. It returns the error of MakeCurrent or f. The thread's slot
// is dropped before Do returns.
func Do(c *Context, f func(cc *CurrentContext) error) error {
	errCh := make(chan error)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		cc, err := MakeCurrent(c)
		if err == nil {
			err = f(cc)
			cc.Release()
		}
		ForgetThread()
		errCh <- err
	}()
	return <-errCh
}

func (cc *CurrentContext) activate(c *Context) error {
	active := cc.refs > 0
	same := active && cc.ctx == c
	if active && !same && cc.ctx.group != c.group {
		panic("glsafe: MakeCurrent: switch to a context of another sharing group while the CurrentContext is in use")
	}
	if same && c.group.api.cnf.exclusiveCurrency {
		cc.refs++
		return nil
	}
	if !c.backend.IsCurrent() {
		if err := c.backend.MakeCurrent(); err != nil {
			return &UnknownError{Op: "make current", Err: err}
		}
		// The context was changed underneath us.
		same = false
	}
	if !same {
		cc.cache.Clear()
		cc.setContext(c)
		cc.api.cnf.logger.Debug("context made current", zap.Uint64("thread", cc.tid), zap.Bool("recycled", !active))
	}
	cc.refs++
	return nil
}

func (cc *CurrentContext) setContext(c *Context) {
	if c != nil {
		c.refs.acquire()
	}
	if old := cc.ctx; old != nil {
		old.release()
	}
	cc.ctx = c
	cc.api = nil
	if c != nil {
		cc.api = c.API()
	}
}

// Context returns the wrapped context.
func (cc *CurrentContext) Context() *Context {
	cc.check()
	return cc.ctx
}

func (cc *CurrentContext) API() *API {
	cc.check()
	return cc.api
}

// StateCache returns the binding cache of the context.
func (cc *CurrentContext) StateCache() *StateCache {
	cc.check()
	return &cc.cache
}

// Finish blocks until all native commands have completed. It must be
// called before converting Current objects to Async.
func (cc *CurrentContext) Finish() {
	cc.funcs().Finish()
}

// Flush submits pending native commands.
func (cc *CurrentContext) Flush() {
	cc.funcs().Flush()
}

// VerifyState queries the native bindings tracked by the StateCache and
// updates the cache to match them. It returns a *StateMismatchError if
// the cache was out of sync.
func (cc *CurrentContext) VerifyState() error {
	f := cc.funcs()
	native := StateCache{
		arrayBuf: gl.Buffer(f.GetBinding(gl.ARRAY_BUFFER_BINDING)),
		elemBuf:  gl.Buffer(f.GetBinding(gl.ELEMENT_ARRAY_BUFFER_BINDING)),
		prog:     gl.Program(f.GetBinding(gl.CURRENT_PROGRAM)),
	}
	err := cc.cache.diff(native)
	cc.cache = native
	if err != nil {
		cc.api.cnf.logger.Warn("state cache out of sync", zap.Error(err))
	}
	return err
}

// Release drops a reference. Dropping the last reference clears the
// current context of the thread.
func (cc *CurrentContext) Release() {
	cc.check()
	cc.refs--
	if cc.refs > 0 {
		return
	}
	api := cc.api
	if err := api.backend.ClearCurrent(); err != nil {
		api.cnf.logger.Error("clear current context", zap.Error(err))
	}
	api.cnf.logger.Debug("context released", zap.Uint64("thread", cc.tid))
	cc.cache.Clear()
	cc.setContext(nil)
}

func (cc *CurrentContext) acquire() {
	cc.check()
	cc.refs++
}

// check panics if cc is released or used from the wrong thread.
func (cc *CurrentContext) check() {
	if tid := thread.ID(); tid != cc.tid {
		panic("glsafe: CurrentContext used from a thread other than the one it is current on")
	}
	if cc.refs <= 0 {
		panic("glsafe: use of a released CurrentContext")
	}
}

func (cc *CurrentContext) funcs() gl.Functions {
	cc.check()
	return cc.api.funcs
}

func (cc *CurrentContext) logger() *zap.Logger {
	return cc.api.cnf.logger
}
