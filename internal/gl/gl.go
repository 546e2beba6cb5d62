// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "fmt"

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER                 = 0x8892
	ARRAY_BUFFER_BINDING         = 0x8894
	COMPILE_STATUS               = 0x8b81
	CURRENT_PROGRAM              = 0x8b8d
	ELEMENT_ARRAY_BUFFER         = 0x8893
	ELEMENT_ARRAY_BUFFER_BINDING = 0x8895
	FALSE                        = 0
	FLOAT                        = 0x1406
	FRAGMENT_SHADER              = 0x8b30
	INVALID_ENUM                 = 0x0500
	INVALID_FRAMEBUFFER_OP       = 0x0506
	INVALID_OPERATION            = 0x0502
	INVALID_VALUE                = 0x0501
	LINK_STATUS                  = 0x8b82
	NO_ERROR                     = 0x0
	OUT_OF_MEMORY                = 0x0505
	STATIC_DRAW                  = 0x88e4
	TRIANGLES                    = 0x4
	TRUE                         = 1
	UNSIGNED_SHORT               = 0x1403
	VERSION                      = 0x1f02
	VERTEX_SHADER                = 0x8b31
)

// ErrorString returns the symbolic name of a glGetError code.
func ErrorString(code Enum) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case INVALID_FRAMEBUFFER_OP:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("%#x", uint(code))
	}
}
