// File: internal/concurrency/bootstrap_linux.go
//go:build linux

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux worker thread pinning via sched_setaffinity on the current thread.

package concurrency

import "golang.org/x/sys/unix"

// platformPinThread binds the calling OS thread to a single CPU.
// The caller must already hold the thread via runtime.LockOSThread.
func platformPinThread(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	// pid 0 targets the calling thread.
	return unix.SchedSetaffinity(0, &set)
}
