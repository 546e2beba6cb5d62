// SPDX-License-Identifier: Unlicense OR MIT

package thread

import "golang.org/x/sys/windows"

// ID returns the id of the calling thread.
func ID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
