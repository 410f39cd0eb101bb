// File: internal/concurrency/bootstrap_windows.go
//go:build windows

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows worker thread pinning via SetThreadAffinityMask.

package concurrency

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread      = modkernel32.NewProc("GetCurrentThread")
)

// platformPinThread binds the calling OS thread to a single CPU.
// The caller must already hold the thread via runtime.LockOSThread.
func platformPinThread(cpuID int) error {
	handle, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << uint(cpuID)
	old, _, err := procSetThreadAffinityMask.Call(handle, mask)
	if old == 0 {
		return fmt.Errorf("SetThreadAffinityMask failed: %v", err)
	}
	return nil
}
