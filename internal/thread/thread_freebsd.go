// SPDX-License-Identifier: Unlicense OR MIT

package thread

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// ID returns the kernel id of the calling thread.
func ID() uint64 {
	var tid int64
	unix.RawSyscall(unix.SYS_THR_SELF, uintptr(unsafe.Pointer(&tid)), 0, 0)
	return uint64(tid)
}
