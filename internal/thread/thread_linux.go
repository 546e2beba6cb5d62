// SPDX-License-Identifier: Unlicense OR MIT

package thread

import "golang.org/x/sys/unix"

// ID returns the kernel id of the calling thread.
func ID() uint64 {
	return uint64(unix.Gettid())
}
