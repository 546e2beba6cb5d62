// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"testing"
)

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in   string
		ver  [2]int
		gles bool
	}{
		{"OpenGL ES 3.2 Mesa 23.0.4", [2]int{3, 2}, true},
		{"OpenGL ES 2.0", [2]int{2, 0}, true},
		{"WebGL 1.0", [2]int{2, 0}, true},
		{"4.6.0 NVIDIA 535.54.03", [2]int{4, 6}, false},
		{"3.3 (Core Profile) Mesa 23.0.4", [2]int{3, 3}, false},
	}
	for _, test := range tests {
		ver, gles, err := ParseGLVersion(test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if ver != test.ver || gles != test.gles {
			t.Errorf("%q: got %v (gles %v), expected %v (gles %v)", test.in, ver, gles, test.ver, test.gles)
		}
	}
	if _, _, err := ParseGLVersion("garbage"); err == nil {
		t.Error("expected an error for an unparseable version")
	}
}

func TestTrimLog(t *testing.T) {
	tests := [][2]string{
		{"  0:1: error\n\x00", "0:1: error"},
		{"", ""},
	}
	for _, test := range tests {
		if got := TrimLog(test[0]); got != test[1] {
			t.Errorf("expected %q got %q", test[1], got)
		}
	}
}

func TestErrorString(t *testing.T) {
	if got := ErrorString(INVALID_OPERATION); got != "GL_INVALID_OPERATION" {
		t.Errorf("got %q", got)
	}
	if got := ErrorString(0x1234); got != "0x1234" {
		t.Errorf("got %q", got)
	}
}
