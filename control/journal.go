// File: control/journal.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Journal keeps a bounded FIFO of recent dispatch lifecycle events
// (launch, ready, synchronize, fork reset) for post-mortem inspection.
// Round-level only: individual task submissions are not journaled to
// keep the producer path cheap.

package control

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// Event is one recorded dispatch lifecycle event.
type Event struct {
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

// Journal is a bounded event log. Oldest events are dropped once the
// capacity is reached.
type Journal struct {
	mu    sync.Mutex
	buf   *queue.Queue
	limit int
}

// NewJournal creates a journal retaining up to limit events.
// A non-positive limit defaults to 64.
func NewJournal(limit int) *Journal {
	if limit <= 0 {
		limit = 64
	}
	return &Journal{
		buf:   queue.New(),
		limit: limit,
	}
}

// Record appends an event, evicting the oldest when full.
func (j *Journal) Record(kind, detail string) {
	j.mu.Lock()
	if j.buf.Length() >= j.limit {
		j.buf.Remove()
	}
	j.buf.Add(Event{Time: time.Now(), Kind: kind, Detail: detail})
	j.mu.Unlock()
}

// Events returns the retained events, oldest first.
func (j *Journal) Events() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Event, 0, j.buf.Length())
	for i := 0; i < j.buf.Length(); i++ {
		out = append(out, j.buf.Get(i).(Event))
	}
	return out
}

// Len returns the number of retained events.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.buf.Length()
}
