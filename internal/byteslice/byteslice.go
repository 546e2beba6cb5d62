// SPDX-License-Identifier: Unlicense OR MIT

// Package byteslice provides byte views of typed slices.
package byteslice

import "unsafe"

// Slice returns a byte view of s. The view aliases s.
func Slice[E any](s []E) []byte {
	if len(s) == 0 {
		return nil
	}
	var e E
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(e)))
}
