// File: internal/concurrency/bootstrap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-generic worker thread bootstrap. Each worker dedicates an OS
// thread to itself for its whole life; CPU pinning is per platform.

package concurrency

import (
	"log"
	"runtime"
)

// bootstrapWorkerThread turns the calling goroutine into a dedicated,
// never-released OS thread and, when requested, pins that thread to a
// CPU chosen by worker index. Pinning failures are logged and otherwise
// ignored; they are never retried and never surface to the pool.
func bootstrapWorkerThread(id int, pin bool) {
	runtime.LockOSThread()
	if !pin {
		return
	}
	if err := platformPinThread(id % runtime.NumCPU()); err != nil {
		log.Printf("concurrency: worker %d: pin to CPU failed: %v", id, err)
	}
}
