// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"gioui.org/glsafe/internal/gl"
	"gioui.org/glsafe/internal/thread"
)

// stubFuncs records native calls and emulates the bindings they change.
// Queries are not recorded.
type stubFuncs struct {
	mu      sync.Mutex
	calls   []string
	names   uint
	free    []uint
	bound   map[gl.Enum]uint
	prog    uint
	data    map[uint][]byte
	sources []string
	errs    []gl.Enum

	compileFail bool
	linkFail    bool
	infoLog     string
	version     string
}

func newStubFuncs() *stubFuncs {
	return &stubFuncs{
		bound:   make(map[gl.Enum]uint),
		data:    make(map[uint][]byte),
		version: "3.3.0 NVIDIA 535.0",
	}
}

func enumName(e gl.Enum) string {
	switch e {
	case gl.ARRAY_BUFFER:
		return "ARRAY_BUFFER"
	case gl.ELEMENT_ARRAY_BUFFER:
		return "ELEMENT_ARRAY_BUFFER"
	case gl.VERTEX_SHADER:
		return "VERTEX_SHADER"
	case gl.FRAGMENT_SHADER:
		return "FRAGMENT_SHADER"
	}
	return fmt.Sprintf("%#x", uint(e))
}

func (f *stubFuncs) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// Calls returns and resets the recorded calls.
func (f *stubFuncs) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.calls
	f.calls = nil
	return c
}

// name allocates a name, reusing the last deleted one like drivers do.
func (f *stubFuncs) name() uint {
	if n := len(f.free); n > 0 {
		v := f.free[n-1]
		f.free = f.free[:n-1]
		return v
	}
	f.names++
	return f.names
}

func (f *stubFuncs) pushError(e gl.Enum) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, e)
}

func (f *stubFuncs) setBinding(target gl.Enum, name uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bound[target] = name
}

func (f *stubFuncs) CreateBuffer() gl.Buffer {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.name()
	f.record("CreateBuffer() %d", n)
	return gl.Buffer{V: n}
}

func (f *stubFuncs) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bound[target] = b.V
	f.record("BindBuffer(%s, %d)", enumName(target), b.V)
}

func (f *stubFuncs) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[f.bound[target]] = append([]byte(nil), src...)
	f.record("BufferData(%s, %d)", enumName(target), len(src))
}

func (f *stubFuncs) DeleteBuffer(b gl.Buffer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for t, v := range f.bound {
		if v == b.V {
			delete(f.bound, t)
		}
	}
	f.free = append(f.free, b.V)
	f.record("DeleteBuffer(%d)", b.V)
}

func (f *stubFuncs) CreateShader(ty gl.Enum) gl.Shader {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.name()
	f.record("CreateShader(%s) %d", enumName(ty), n)
	return gl.Shader{V: n}
}

func (f *stubFuncs) ShaderSource(s gl.Shader, src string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, src)
	f.record("ShaderSource(%d)", s.V)
}

func (f *stubFuncs) CompileShader(s gl.Shader) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CompileShader(%d)", s.V)
}

func (f *stubFuncs) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pname == gl.COMPILE_STATUS && f.compileFail {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *stubFuncs) GetShaderInfoLog(s gl.Shader) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoLog
}

func (f *stubFuncs) DeleteShader(s gl.Shader) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.free = append(f.free, s.V)
	f.record("DeleteShader(%d)", s.V)
}

func (f *stubFuncs) CreateProgram() gl.Program {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.name()
	f.record("CreateProgram() %d", n)
	return gl.Program{V: n}
}

func (f *stubFuncs) AttachShader(p gl.Program, s gl.Shader) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AttachShader(%d, %d)", p.V, s.V)
}

func (f *stubFuncs) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BindAttribLocation(%d, %d, %s)", p.V, a, name)
}

func (f *stubFuncs) LinkProgram(p gl.Program) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("LinkProgram(%d)", p.V)
}

func (f *stubFuncs) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pname == gl.LINK_STATUS && f.linkFail {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *stubFuncs) GetProgramInfoLog(p gl.Program) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.infoLog
}

func (f *stubFuncs) UseProgram(p gl.Program) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prog = p.V
	f.record("UseProgram(%d)", p.V)
}

func (f *stubFuncs) DeleteProgram(p gl.Program) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.free = append(f.free, p.V)
	f.record("DeleteProgram(%d)", p.V)
}

func (f *stubFuncs) GetBinding(pname gl.Enum) gl.Object {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch pname {
	case gl.ARRAY_BUFFER_BINDING:
		return gl.Object{V: f.bound[gl.ARRAY_BUFFER]}
	case gl.ELEMENT_ARRAY_BUFFER_BINDING:
		return gl.Object{V: f.bound[gl.ELEMENT_ARRAY_BUFFER]}
	case gl.CURRENT_PROGRAM:
		return gl.Object{V: f.prog}
	}
	panic(fmt.Sprintf("stub: unknown binding %#x", uint(pname)))
}

func (f *stubFuncs) GetString(pname gl.Enum) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pname == gl.VERSION {
		return f.version
	}
	return ""
}

func (f *stubFuncs) GetError() gl.Enum {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errs) == 0 {
		return gl.NO_ERROR
	}
	e := f.errs[0]
	f.errs = f.errs[1:]
	return e
}

func (f *stubFuncs) Finish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Finish()")
}

func (f *stubFuncs) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Flush()")
}

// stubDisplay tracks the context current on each thread.
type stubDisplay struct {
	mu          sync.Mutex
	current     map[uint64]*stubContext
	isCurrent   int
	makeCurrent int
	clears      int
}

func newStubDisplay() *stubDisplay {
	return &stubDisplay{current: make(map[uint64]*stubContext)}
}

func (d *stubDisplay) counts() (isCurrent, makeCurrent, clears int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isCurrent, d.makeCurrent, d.clears
}

// steal makes no context current on the calling thread, behind the back
// of the glsafe package.
func (d *stubDisplay) steal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.current, thread.ID())
}

type stubContext struct {
	d        *stubDisplay
	fail     error
	released bool
}

func (c *stubContext) IsCurrent() bool {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	c.d.isCurrent++
	return c.d.current[thread.ID()] == c
}

func (c *stubContext) MakeCurrent() error {
	if c.fail != nil {
		return c.fail
	}
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	c.d.makeCurrent++
	c.d.current[thread.ID()] = c
	return nil
}

func (c *stubContext) Release() {
	c.released = true
}

type stubAPIBackend struct {
	d        *stubDisplay
	released bool
}

func (b *stubAPIBackend) ClearCurrent() error {
	b.d.mu.Lock()
	defer b.d.mu.Unlock()
	b.d.clears++
	delete(b.d.current, thread.ID())
	return nil
}

func (b *stubAPIBackend) Release() {
	b.released = true
}

type stubGroup struct {
	d        *stubDisplay
	contexts []*stubContext
	fail     error
	released bool
}

func (g *stubGroup) CreateContext() (ContextBackend, error) {
	if g.fail != nil {
		return nil, g.fail
	}
	c := &stubContext{d: g.d}
	g.contexts = append(g.contexts, c)
	return c, nil
}

func (g *stubGroup) Release() {
	g.released = true
}

var procAddr byte

type stubProvider struct {
	d       *stubDisplay
	missing map[string]bool
	backend *stubAPIBackend
}

func (p *stubProvider) GetProcAddress(name string) unsafe.Pointer {
	if p.missing[name] {
		return nil
	}
	return unsafe.Pointer(&procAddr)
}

func (p *stubProvider) Backend() (APIBackend, error) {
	if p.backend == nil {
		return nil, errors.New("no display")
	}
	return p.backend, nil
}

type testEnv struct {
	api     *API
	funcs   *stubFuncs
	display *stubDisplay
	backend *stubAPIBackend
}

// newTestAPI creates an API backed by stubs. The calling goroutine is
// locked to its thread for the rest of the test.
func newTestAPI(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	runtime.LockOSThread()
	env := &testEnv{
		funcs:   newStubFuncs(),
		display: newStubDisplay(),
	}
	env.backend = &stubAPIBackend{d: env.display}
	stubLoader(t, env.funcs)
	api, err := NewAPI(&stubProvider{d: env.display, backend: env.backend}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	env.api = api
	return env
}

// stubLoader replaces the function table loader for the duration of the
// test, and resets the package state afterwards.
func stubLoader(t *testing.T, f gl.Functions) {
	old := loadFunctions
	loadFunctions = func(getProcAddress func(name string) unsafe.Pointer) (gl.Functions, error) {
		if _, err := gl.Resolve(getProcAddress); err != nil {
			return nil, err
		}
		return f, nil
	}
	t.Cleanup(func() {
		loadFunctions = old
		apiExists.Store(false)
		currents.Range(func(k, _ any) bool {
			currents.Delete(k)
			return true
		})
		runtime.UnlockOSThread()
	})
}

// newContext returns a Context in its own sharing group.
func (e *testEnv) newContext() (*Context, *stubContext) {
	sc := &stubContext{d: e.display}
	return NewContext(e.api, sc), sc
}

func (e *testEnv) makeCurrent(t *testing.T, c *Context) *CurrentContext {
	t.Helper()
	cc, err := MakeCurrent(c)
	if err != nil {
		t.Fatal(err)
	}
	return cc
}

// assertReleased fails the test if the API is still alive.
func assertReleased(t *testing.T) {
	t.Helper()
	if apiExists.Load() {
		t.Error("API still alive after releasing every reference")
	}
}

func mustPanic(t *testing.T, substr string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("no panic, expected one containing %q", substr)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, substr) {
			t.Fatalf("panic %q does not contain %q", msg, substr)
		}
	}()
	f()
}
