// File: internal/concurrency/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool owns a fixed array of slots and the same number of perpetual
// worker threads. Workers are started once and never joined; the pool
// has process lifetime and is never torn down during normal operation.

package concurrency

import (
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/hioload-dispatch/api"
)

// Pool is the fixed-size dispatch pool. The slot array, the round-robin
// pivot and the worker count are owned solely by the single producer;
// none of the producer-side operations are synchronized against each
// other. See the package warning.
type Pool struct {
	waiter *Waiter
	slots  []slot
	pivot  int // round-robin cursor, producer-owned
	pin    bool

	// statistics, diagnostic only
	completed int64
	failed    int64
}

// Ensure compile-time interface compliance.
var _ api.Dispatcher = (*Pool)(nil)

// NewPool allocates count zero-initialized slots (all Idle) and starts
// count worker threads, each bound to one slot by index. If count <= 0
// it defaults to runtime.NumCPU(). If waiter is nil a fresh one is
// created; drivers that must survive fork resets pass their own.
//
// Worker startup problems (thread pinning and the like) are neither
// retried nor reported: a slot whose worker never came up will accept
// tasks and transition to Ready but never reach Running, so any later
// barrier on it spins indefinitely. Callers wanting bounded dispatch
// latency must guarantee startup succeeds.
func NewPool(count int, waiter *Waiter, pinWorkers bool) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	if waiter == nil {
		waiter = NewWaiter()
	}
	p := &Pool{
		waiter: waiter,
		slots:  make([]slot, count),
		pin:    pinWorkers,
	}
	for i := range p.slots {
		go p.runWorker(i, &p.slots[i])
	}
	return p
}

// Waiter returns the waiter driving this pool's transitions.
func (p *Pool) Waiter() *Waiter {
	return p.waiter
}

// NumWorkers returns the fixed worker count.
func (p *Pool) NumWorkers() int {
	return len(p.slots)
}

// AddTask writes a task into the slot under the round-robin cursor and
// advances the cursor, wrapping at the slot count. Not synchronized:
// the caller must guarantee the targeted slot is currently Idle and
// that no more tasks than slots are submitted between rounds; extra
// submissions silently overwrite not-yet-started tasks.
func (p *Pool) AddTask(fn api.KernelFunc, args, dims, steps, data unsafe.Pointer) {
	t := &p.slots[p.pivot].task
	t.Fn = fn
	t.Args = args
	t.Dims = dims
	t.Steps = steps
	t.Data = data

	if p.pivot++; p.pivot == len(p.slots) {
		p.pivot = 0
	}
}

// Ready releases all workers: every slot is transitioned Idle->Ready,
// blocking per slot while it is not yet Idle. Slots that were not
// refilled this round still cycle through the state machine, so a
// previously stored task re-executes unless every round fills every
// slot.
func (p *Pool) Ready() {
	for i := range p.slots {
		p.waiter.WaitFor(&p.slots[i].state, StateIdle, StateReady)
	}
}

// Synchronize is the full barrier: every slot is transitioned
// Done->Idle, blocking per slot until its worker has finished. It
// returns only once all workers have completed their current task and
// every slot is reusable. Unbounded: a stuck worker stalls it forever.
func (p *Pool) Synchronize() {
	for i := range p.slots {
		p.waiter.WaitFor(&p.slots[i].state, StateDone, StateIdle)
	}
}

// Stats returns diagnostic counters and a per-state slot census. The
// census reads slot states with plain atomic loads outside the CAS
// discipline, so it is a best-effort snapshot.
func (p *Pool) Stats() map[string]int64 {
	out := map[string]int64{
		"workers":         int64(len(p.slots)),
		"tasks_completed": atomic.LoadInt64(&p.completed),
		"tasks_failed":    atomic.LoadInt64(&p.failed),
	}
	for i := range p.slots {
		out["slots_"+StateName(atomic.LoadInt32(&p.slots[i].state))]++
	}
	return out
}
