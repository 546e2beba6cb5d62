// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin && cgo

package thread

/*
#include <pthread.h>
#include <stdint.h>

static uint64_t thread_id(void) {
	uint64_t tid = 0;
	pthread_threadid_np(NULL, &tid);
	return tid;
}
*/
import "C"

// ID returns the system-wide id of the calling thread.
func ID() uint64 {
	return uint64(C.thread_id())
}
