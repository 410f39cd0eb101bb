// File: api/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Core value types shared by the dispatch core and its drivers.

package api

import "unsafe"

// KernelFunc is the fixed calling convention for compute kernels.
// All four operands are opaque addresses owned by the host; the
// dispatcher stores and forwards them without interpretation.
type KernelFunc func(args, dims, steps, data unsafe.Pointer)

// Task is a plain kernel descriptor. It is copied by value into a
// worker slot and is immutable once stored.
type Task struct {
	Fn    KernelFunc
	Args  unsafe.Pointer
	Dims  unsafe.Pointer
	Steps unsafe.Pointer
	Data  unsafe.Pointer
}

// CASFunc is the externally supplied compare-and-swap capability that
// drives every slot state transition. It atomically compares *addr
// with old and, on match, stores repl, reporting whether the swap
// occurred. The host installs it exactly once before any dispatch
// operation; until then every wait spins without progress.
type CASFunc func(addr *int32, old, repl int32) bool
