// File: internal/concurrency/state.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slot state machine for the producer/worker handshake.

package concurrency

// Slot states. A slot cycles Idle -> Ready -> Running -> Done -> Idle.
// The producer owns the Idle->Ready and Done->Idle edges, the bound
// worker owns Ready->Running and Running->Done. Whoever holds the
// current state per this table is the sole owner of the slot's task
// field; there is no separate lock.
const (
	StateIdle int32 = iota
	StateReady
	StateRunning
	StateDone
)

var stateNames = [...]string{"idle", "ready", "running", "done"}

// StateName returns a human-readable name for diagnostics and probes.
func StateName(s int32) string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
