// File: facade/dispatch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unified facade for the dispatch library. A Dispatcher aggregates the
// process-wide pool handle, the set-once CAS capability, the fork guard
// and the control surfaces (metrics, journal, probes) behind the five
// entry points a host driver uses: InstallCAS, LaunchThreads, AddTask,
// Ready, Synchronize.

package facade

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/hioload-dispatch/api"
	"github.com/momentics/hioload-dispatch/control"
	"github.com/momentics/hioload-dispatch/internal/concurrency"
)

// Dispatcher owns one pool handle with process lifetime. The handle is
// built lazily on first use, never resized and never torn down; the
// only teardown trigger is a fork reset, which drops the reference (not
// the memory) so the child rebuilds its own pool on the next dispatch.
//
// The producer-side operations (AddTask, Ready, Synchronize) inherit
// the single-producer contract of the underlying pool.
type Dispatcher struct {
	waiter  *concurrency.Waiter
	pool    atomic.Pointer[concurrency.Pool]
	threads atomic.Int32 // requested worker count; 0 means NumCPU
	pin     bool

	submitted int64 // atomic, producer-side task count
	rounds    int64 // atomic, completed ready/synchronize cycles

	journal *control.Journal
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
}

// Ensure compile-time interface compliance.
var _ api.Dispatcher = (*Dispatcher)(nil)

// New constructs a Dispatcher without launching workers. threads <= 0
// defers to runtime.NumCPU at launch time. The dispatcher registers
// itself with the fork guard so a child process starts with a cleared
// pool handle; registration is for the life of the process, so a
// constructed Dispatcher is never collectible and every one built in
// this process gets reset by concurrency.ForkChild. Intended use is
// one dispatcher per process (see Default).
func New(threads int, pinWorkers bool) *Dispatcher {
	d := &Dispatcher{
		waiter:  concurrency.NewWaiter(),
		pin:     pinWorkers,
		journal: control.NewJournal(64),
		metrics: control.NewMetricsRegistry(),
		probes:  control.NewDebugProbes(),
	}
	d.threads.Store(int32(threads))

	concurrency.AtForkChild(d.ResetAfterFork)

	d.probes.RegisterProbe("cas_installed", func() any {
		return d.waiter.Installed()
	})
	d.probes.RegisterProbe("pool", func() any {
		if p := d.pool.Load(); p != nil {
			return p.Stats()
		}
		return nil
	})
	return d
}

var (
	defaultOnce sync.Once
	defaultDisp *Dispatcher
)

// Default returns the process-wide dispatcher, creating it on first
// use with NumCPU workers and no CPU pinning.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDisp = New(0, false)
	})
	return defaultDisp
}

// InstallCAS stores the compare-and-swap capability. Must happen
// before any AddTask/Ready/Synchronize call: without it every wait
// spins with backoff and no defined termination. Set-once.
func (d *Dispatcher) InstallCAS(fn api.CASFunc) error {
	if err := d.waiter.Install(fn); err != nil {
		return err
	}
	d.journal.Record("install-cas", "")
	return nil
}

// LaunchThreads launches the pool with n workers. Effective only the
// first time process-wide (or after a fork reset): once a pool exists,
// further calls neither add threads nor resize, though a positive n is
// remembered for the next lazy launch after a fork.
func (d *Dispatcher) LaunchThreads(n int) {
	if n > 0 {
		d.threads.Store(int32(n))
	}
	d.ensurePool()
}

// ensurePool returns the live pool, launching one if the handle was
// never set or was dropped by a fork reset.
func (d *Dispatcher) ensurePool() *concurrency.Pool {
	if p := d.pool.Load(); p != nil {
		return p
	}
	p := concurrency.NewPool(int(d.threads.Load()), d.waiter, d.pin)
	if !d.pool.CompareAndSwap(nil, p) {
		// Lost a (contract-violating) launch race; the extra pool's
		// workers idle forever on their own slots, same as the
		// original's leaked queues.
		return d.pool.Load()
	}
	d.journal.Record("launch", fmt.Sprintf("workers=%d pin=%v", p.NumWorkers(), d.pin))
	d.metrics.Set("workers", int64(p.NumWorkers()))
	return p
}

// AddTask writes a task into the next round-robin slot. Unsynchronized
// by design; see the api.Dispatcher contract.
func (d *Dispatcher) AddTask(fn api.KernelFunc, args, dims, steps, data unsafe.Pointer) {
	d.ensurePool().AddTask(fn, args, dims, steps, data)
	atomic.AddInt64(&d.submitted, 1)
}

// Ready releases all workers holding committed tasks.
func (d *Dispatcher) Ready() {
	d.ensurePool().Ready()
	d.journal.Record("ready", "")
}

// Synchronize barriers on every slot reaching Done and resets the pool
// for the next round.
func (d *Dispatcher) Synchronize() {
	d.ensurePool().Synchronize()
	rounds := atomic.AddInt64(&d.rounds, 1)
	d.journal.Record("synchronize", "")
	d.metrics.Set("rounds", rounds)
	d.metrics.Set("tasks_submitted", atomic.LoadInt64(&d.submitted))
}

// NumWorkers returns the launched pool's worker count, launching
// lazily like every other dispatch operation.
func (d *Dispatcher) NumWorkers() int {
	return d.ensurePool().NumWorkers()
}

// ResetAfterFork drops the pool handle so the next dispatch call in a
// child process builds a fresh pool. The parent's pool and the
// installed CAS capability are unaffected. Normally invoked through
// concurrency.ForkChild, not called directly.
func (d *Dispatcher) ResetAfterFork() {
	d.pool.Store(nil)
	d.journal.Record("fork-reset", "")
}

// Journal exposes the dispatch lifecycle journal.
func (d *Dispatcher) Journal() *control.Journal {
	return d.journal
}

// Metrics exposes the metrics registry.
func (d *Dispatcher) Metrics() *control.MetricsRegistry {
	return d.metrics
}

// Probes exposes the debug probe registry.
func (d *Dispatcher) Probes() *control.DebugProbes {
	return d.probes
}
