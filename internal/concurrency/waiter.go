// File: internal/concurrency/waiter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Waiter spin-polls a slot state transition through the installed CAS
// capability, napping with capped exponential backoff between attempts.

package concurrency

import (
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-dispatch/api"
)

const (
	// napStart is the first nap after a failed transition attempt.
	napStart = time.Microsecond
	// napCeiling bounds the backoff growth.
	napCeiling = 20 * time.Millisecond
)

// Waiter holds the set-once CAS capability and implements the blocking
// wait-for-transition primitive. It is shared by the producer side and
// every worker of a pool, and deliberately survives fork resets so a
// relaunched pool inherits the already-installed capability.
type Waiter struct {
	cas atomic.Pointer[api.CASFunc]
}

// NewWaiter returns a Waiter with no capability installed.
func NewWaiter() *Waiter {
	return &Waiter{}
}

// Install stores the CAS capability. Set-once: a second installation is
// rejected. Installing concurrently with active dispatch is undefined.
func (w *Waiter) Install(fn api.CASFunc) error {
	if fn == nil {
		return api.ErrNilCAS
	}
	if !w.cas.CompareAndSwap(nil, &fn) {
		return api.ErrCASInstalled
	}
	return nil
}

// Installed reports whether a capability has been installed.
func (w *Waiter) Installed() bool {
	return w.cas.Load() != nil
}

// WaitFor blocks until *addr transitions from old to repl and performs
// that transition atomically. This is a busy-wait: it naps napStart
// after the first failed attempt and doubles the nap on every further
// failure up to napCeiling. There is no cancellation and no timeout;
// the only way out is the expected transition occurring. With no CAS
// capability installed the attempt is skipped and the loop naps
// forever without progress.
func (w *Waiter) WaitFor(addr *int32, old, repl int32) {
	nap := napStart
	for {
		if cas := w.cas.Load(); cas != nil {
			if (*cas)(addr, old, repl) {
				return
			}
		}
		time.Sleep(nap)
		nap <<= 1
		if nap >= napCeiling {
			nap = napCeiling
		}
	}
}
