// File: internal/concurrency/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The perpetual worker loop bound to a single slot.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/hioload-dispatch/api"
)

// runWorker is the life of one worker thread. It locks itself to an OS
// thread, optionally pins that thread to a CPU, and then loops forever:
// claim the slot (Ready->Running), run the stored kernel, publish
// completion (Running->Done). The worker never reads the pivot or any
// other slot; it has no notion of global progress, only its own slot.
func (p *Pool) runWorker(id int, s *slot) {
	bootstrapWorkerThread(id, p.pin)
	for {
		p.waiter.WaitFor(&s.state, StateReady, StateRunning)
		p.invoke(&s.task)
		p.waiter.WaitFor(&s.state, StateRunning, StateDone)
	}
}

// invoke runs the slot's kernel. A nil function (a slot never filled
// since pool launch) is skipped. Panics are swallowed and counted so
// the worker stays alive and still drives its slot to Done; otherwise
// a misbehaving kernel would wedge the barrier for the whole process.
func (p *Pool) invoke(t *api.Task) {
	if t.Fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			atomic.AddInt64(&p.failed, 1)
			return
		}
		atomic.AddInt64(&p.completed, 1)
	}()
	t.Fn(t.Args, t.Dims, t.Steps, t.Data)
}
