// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux && !windows && !freebsd && !(darwin && cgo)

package thread

import (
	"bytes"
	"runtime"
	"strconv"
)

// ID returns the id of the calling goroutine. A goroutine locked to its
// thread owns that thread exclusively, so the goroutine id stands in for
// the thread id on platforms without a thread id system call.
func ID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("thread: unable to parse goroutine id: " + err.Error())
	}
	return id
}
