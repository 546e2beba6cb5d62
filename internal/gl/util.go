// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"strings"
)

// ParseGLVersion parses a GL_VERSION string and reports whether it
// describes OpenGL ES.
func ParseGLVersion(glVer string) (version [2]int, gles bool, err error) {
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &version[0], &version[1]); err == nil {
		return version, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &version[0], &version[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		version[0]++
		return version, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &version[0], &version[1]); err == nil {
		return version, false, nil
	}
	return version, false, fmt.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// TrimLog trims an info log returned by the driver.
func TrimLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}
