// File: internal/concurrency/bootstrap_stub.go
//go:build !linux && !windows

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without thread pinning support.

package concurrency

// platformPinThread is a no-op on unsupported platforms; workers still
// hold a dedicated OS thread, just not a fixed CPU.
func platformPinThread(cpuID int) error {
	return nil
}
