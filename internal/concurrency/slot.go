// File: internal/concurrency/slot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A slot is a single-task mailbox bound to exactly one worker.

package concurrency

import "github.com/momentics/hioload-dispatch/api"

// slot pairs one atomic state word with one task descriptor. state is
// the only field governing visibility between producer and worker:
// the producer touches task only while the slot is Idle, the worker
// only while it is Running. Padded so adjacent slots never share a
// cache line.
type slot struct {
	state int32
	_     [60]byte // state on its own cache line
	task  api.Task
	_     [24]byte // round the slot to a whole number of cache lines
}
