// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"gioui.org/glsafe/internal/gl"
)

// apiExists guards against more than one live API per process.
var apiExists atomic.Bool

// loadFunctions builds the native function table.
var loadFunctions = gl.Load

// APIBackend is the part of a window toolkit that outlives API
// construction.
type APIBackend interface {
	// ClearCurrent detaches any context from the calling thread. It is
	// called whether or not a context is current.
	ClearCurrent() error
}

// APIProvider supplies the native function table. A context must be
// current on the calling thread while NewAPI runs, and only then.
type APIProvider interface {
	// GetProcAddress returns the address of the named GL procedure, or
	// nil if it does not exist.
	GetProcAddress(name string) unsafe.Pointer
	// Backend converts the provider into its APIBackend. No context
	// needs to be current afterwards.
	Backend() (APIBackend, error)
}

// API is the loaded native function table. At most one API exists at a
// time. The API is released when the last Context, SharingGroup and
// Async object created from it is released, in addition to the
// reference returned by NewAPI.
//
// If the backend implements a Release method, it is called when the API
// is released.
type API struct {
	refs    refCount
	funcs   gl.Functions
	backend APIBackend
	cnf     config
}

// NewAPI loads the function table through p. It fails with
// ErrAPIAlreadyExists if another API is alive.
func NewAPI(p APIProvider, opts ...Option) (*API, error) {
	if apiExists.Swap(true) {
		return nil, ErrAPIAlreadyExists
	}
	ok := false
	defer func() {
		if !ok {
			apiExists.Store(false)
		}
	}()
	cnf := newConfig(opts)
	f, err := loadFunctions(p.GetProcAddress)
	if err != nil {
		return nil, &UnknownError{Op: "load functions", Err: err}
	}
	b, err := p.Backend()
	if err != nil {
		return nil, &UnknownError{Op: "create backend", Err: err}
	}
	a := &API{
		funcs:   f,
		backend: b,
		cnf:     cnf,
	}
	a.refs.init()
	cnf.logger.Debug("api loaded", zap.Int("procs", len(gl.ProcNames)))
	ok = true
	return a, nil
}

// Logger returns the logger configured by WithLogger.
func (a *API) Logger() *zap.Logger {
	return a.cnf.logger
}

// Release drops the reference returned by NewAPI.
func (a *API) Release() {
	a.release()
}

func (a *API) release() {
	if !a.refs.release() {
		return
	}
	if r, ok := a.backend.(releaser); ok {
		r.Release()
	}
	a.cnf.logger.Debug("api released")
	apiExists.Store(false)
}

// check returns the pending native error, if error checking is enabled.
func (a *API) check(op string) error {
	if !a.cnf.checkErrors {
		return nil
	}
	return glErr(a.funcs, op)
}
