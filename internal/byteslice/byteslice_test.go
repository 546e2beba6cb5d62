// SPDX-License-Identifier: Unlicense OR MIT

package byteslice

import (
	"testing"
)

func TestSlice(t *testing.T) {
	s := []uint16{0x0101, 0x0202}
	b := Slice(s)
	if len(b) != 4 {
		t.Fatalf("got %d bytes, expected 4", len(b))
	}
	b[2], b[3] = 0x07, 0x07
	if s[1] != 0x0707 {
		t.Errorf("view does not alias the slice: %#x", s[1])
	}
	if Slice([]uint16(nil)) != nil {
		t.Error("expected nil view of an empty slice")
	}
}
