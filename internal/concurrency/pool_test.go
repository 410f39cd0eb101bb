// File: internal/concurrency/pool_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"
)

func newTestPool(t *testing.T, count int) *Pool {
	t.Helper()
	w := NewWaiter()
	if err := w.Install(atomicCAS); err != nil {
		t.Fatal(err)
	}
	return NewPool(count, w, false)
}

// incCell is a kernel incrementing the int32 cell behind data.
func incCell(_, _, _, data unsafe.Pointer) {
	atomic.AddInt32((*int32)(data), 1)
}

func TestRoundExecutesEachTaskOnce(t *testing.T) {
	p := newTestPool(t, 4)

	var cells [4]int32
	for i := range cells {
		p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&cells[i]))
	}
	p.Ready()
	p.Synchronize()

	for i, v := range cells {
		if v != 1 {
			t.Errorf("cell %d = %d, want 1", i, v)
		}
	}
	if idle := p.Stats()["slots_idle"]; idle != 4 {
		t.Errorf("slots_idle = %d after synchronize, want 4", idle)
	}

	// A second round over the same slots must produce fresh, non-stale
	// results.
	var cells2 [4]int32
	for i := range cells2 {
		p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&cells2[i]))
	}
	p.Ready()
	p.Synchronize()

	for i, v := range cells2 {
		if v != 1 {
			t.Errorf("round 2: cell %d = %d, want 1", i, v)
		}
	}
	for i, v := range cells {
		if v != 1 {
			t.Errorf("round 2 disturbed round 1 cell %d: %d", i, v)
		}
	}
}

func TestAddTaskRoundRobin(t *testing.T) {
	p := newTestPool(t, 4)

	var marks [4]int32
	for i := range marks {
		p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&marks[i]))
	}
	for i := range p.slots {
		if p.slots[i].task.Data != unsafe.Pointer(&marks[i]) {
			t.Errorf("task %d not in slot %d", i, i)
		}
	}
	if p.pivot != 0 {
		t.Fatalf("pivot = %d after a full round of adds, want 0", p.pivot)
	}

	// One extra submission before ready() silently overwrites the
	// not-yet-started task in slot 0.
	var extra int32
	p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&extra))
	if p.slots[0].task.Data != unsafe.Pointer(&extra) {
		t.Error("extra task did not overwrite slot 0")
	}
	if p.pivot != 1 {
		t.Errorf("pivot = %d after wrap, want 1", p.pivot)
	}
}

func TestSynchronizeIsFullBarrier(t *testing.T) {
	p := newTestPool(t, 4)

	var finished int32
	slow := func(_, _, _, data unsafe.Pointer) {
		time.Sleep(time.Duration(*(*int32)(data)) * time.Millisecond)
		atomic.AddInt32(&finished, 1)
	}
	delays := [4]int32{5, 40, 10, 25}
	for i := range delays {
		p.AddTask(slow, nil, nil, nil, unsafe.Pointer(&delays[i]))
	}
	p.Ready()
	p.Synchronize()

	if got := atomic.LoadInt32(&finished); got != 4 {
		t.Fatalf("synchronize returned with %d/4 workers finished", got)
	}
	if idle := p.Stats()["slots_idle"]; idle != 4 {
		t.Fatalf("slots_idle = %d after barrier, want 4", idle)
	}
}

// Slots not refilled in a round keep their previous task and execute
// it again: the protocol cycles every slot through the state machine
// regardless of whether the producer rewrote it.
func TestUnfilledSlotsReplayStaleTasks(t *testing.T) {
	p := newTestPool(t, 4)

	var counters [4]int32
	for i := range counters {
		p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&counters[i]))
	}
	p.Ready()
	p.Synchronize()

	// Refill only the first two slots; slots 2 and 3 go stale.
	p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&counters[0]))
	p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&counters[1]))
	p.Ready()
	p.Synchronize()

	for i, v := range counters {
		if v != 2 {
			t.Errorf("counter %d = %d, want 2 (stale replay included)", i, v)
		}
	}
}

func TestEmptyRoundOnFreshPool(t *testing.T) {
	p := newTestPool(t, 2)
	p.Ready()
	p.Synchronize()

	stats := p.Stats()
	if stats["tasks_completed"] != 0 || stats["tasks_failed"] != 0 {
		t.Fatalf("empty round ran something: %v", stats)
	}
	if stats["slots_idle"] != 2 {
		t.Fatalf("slots_idle = %d, want 2", stats["slots_idle"])
	}
}

func TestWorkerSurvivesPanickingKernel(t *testing.T) {
	p := newTestPool(t, 2)

	boom := func(_, _, _, _ unsafe.Pointer) { panic("kernel failure") }
	var cell int32
	p.AddTask(boom, nil, nil, nil, nil)
	p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&cell))
	p.Ready()
	p.Synchronize()

	if cell != 1 {
		t.Errorf("healthy task did not run: cell = %d", cell)
	}
	stats := p.Stats()
	if stats["tasks_failed"] != 1 {
		t.Errorf("tasks_failed = %d, want 1", stats["tasks_failed"])
	}

	// The worker that recovered must still serve its slot.
	p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&cell))
	p.AddTask(incCell, nil, nil, nil, unsafe.Pointer(&cell))
	p.Ready()
	p.Synchronize()
	if cell != 3 {
		t.Errorf("cell = %d after recovery round, want 3", cell)
	}
}

func TestSlotLayoutKeepsCacheLinesDisjoint(t *testing.T) {
	const cacheLine = 64
	if off := unsafe.Offsetof(slot{}.task); off != cacheLine {
		t.Errorf("task offset = %d, want %d (state alone on its line)", off, cacheLine)
	}
	if sz := unsafe.Sizeof(slot{}); sz%cacheLine != 0 {
		t.Errorf("slot size = %d, not a multiple of the cache line", sz)
	}
}

func TestDefaultWorkerCount(t *testing.T) {
	w := NewWaiter()
	if err := w.Install(atomicCAS); err != nil {
		t.Fatal(err)
	}
	p := NewPool(0, w, false)
	if p.NumWorkers() != runtime.NumCPU() {
		t.Fatalf("NumWorkers = %d, want NumCPU = %d", p.NumWorkers(), runtime.NumCPU())
	}

	// A nil waiter gets replaced with a fresh, uninstalled one.
	q := NewPool(1, nil, false)
	if q.Waiter() == nil || q.Waiter().Installed() {
		t.Fatal("NewPool(nil waiter) did not create a fresh waiter")
	}
}
