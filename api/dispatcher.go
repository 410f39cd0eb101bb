// File: api/dispatcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatcher contract for single-slot-per-worker kernel dispatch.

package api

import "unsafe"

// Dispatcher abstracts the four-state handshake dispatch cycle.
//
// The contract is deliberately minimal and deliberately sharp: a single
// producer builds at most NumWorkers tasks via AddTask, releases them
// with Ready, and must call Synchronize before reusing captured buffers
// or starting the next round. AddTask is not synchronized; concurrent
// producers are unsupported, not merely discouraged.
type Dispatcher interface {
	// AddTask writes a task into the slot under the round-robin cursor
	// and advances the cursor. The targeted slot must currently be idle.
	AddTask(fn KernelFunc, args, dims, steps, data unsafe.Pointer)

	// Ready transitions every slot Idle->Ready, releasing all workers
	// holding committed tasks. Blocks per slot until it is idle.
	Ready()

	// Synchronize transitions every slot Done->Idle, acting as a full
	// barrier: it returns only once every worker has finished its
	// current task and its slot has been reset for reuse.
	Synchronize()

	// NumWorkers returns the fixed worker count of the launched pool.
	NumWorkers() int
}
