// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/exp/slices"
)

// Functions is the native function table. Every method assumes a context
// is current on the calling thread.
type Functions interface {
	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, src []byte, usage Enum)
	DeleteBuffer(b Buffer)

	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	GetBinding(pname Enum) Object
	GetString(pname Enum) string
	GetError() Enum
	Finish()
	Flush()
}

// ProcNames lists the procedures a function table must resolve.
var ProcNames = []string{
	"glGenBuffers",
	"glBindBuffer",
	"glBufferData",
	"glDeleteBuffers",
	"glCreateShader",
	"glShaderSource",
	"glCompileShader",
	"glGetShaderiv",
	"glGetShaderInfoLog",
	"glDeleteShader",
	"glCreateProgram",
	"glAttachShader",
	"glBindAttribLocation",
	"glLinkProgram",
	"glGetProgramiv",
	"glGetProgramInfoLog",
	"glUseProgram",
	"glDeleteProgram",
	"glGetIntegerv",
	"glGetString",
	"glGetError",
	"glFinish",
	"glFlush",
}

// LoadFunc builds a function table from a procedure address resolver.
type LoadFunc func(getProcAddress func(name string) unsafe.Pointer) (Functions, error)

var (
	loaderMu sync.Mutex
	loader   LoadFunc
)

// Register sets the native function table implementation. It is
// called from the init function of the implementing package.
func Register(f LoadFunc) {
	loaderMu.Lock()
	defer loaderMu.Unlock()
	loader = f
}

// Load builds the registered function table.
func Load(getProcAddress func(name string) unsafe.Pointer) (Functions, error) {
	loaderMu.Lock()
	f := loader
	loaderMu.Unlock()
	if f == nil {
		return nil, errors.New("gl: no function table registered (import gioui.org/glsafe/native)")
	}
	return f(getProcAddress)
}

// Resolve looks up every procedure in ProcNames and fails if any of
// them is missing.
func Resolve(getProcAddress func(name string) unsafe.Pointer) (map[string]unsafe.Pointer, error) {
	procs := make(map[string]unsafe.Pointer, len(ProcNames))
	var missing []string
	for _, name := range ProcNames {
		addr := getProcAddress(name)
		if addr == nil {
			missing = append(missing, name)
			continue
		}
		procs[name] = addr
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("gl: missing procedures: %s", strings.Join(slices.Compact(missing), ", "))
	}
	return procs, nil
}
