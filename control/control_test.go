// File: control/control_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control

import (
	"fmt"
	"testing"

	"github.com/sugawarayuuta/sonnet"
)

func TestJournalEvictsOldest(t *testing.T) {
	j := NewJournal(3)
	for i := 0; i < 5; i++ {
		j.Record("event", fmt.Sprintf("n=%d", i))
	}
	if j.Len() != 3 {
		t.Fatalf("Len = %d, want 3", j.Len())
	}
	events := j.Events()
	if events[0].Detail != "n=2" || events[2].Detail != "n=4" {
		t.Fatalf("unexpected retained window: %+v", events)
	}
}

func TestJournalDefaultLimit(t *testing.T) {
	j := NewJournal(0)
	for i := 0; i < 100; i++ {
		j.Record("event", "")
	}
	if j.Len() != 64 {
		t.Fatalf("Len = %d, want default limit 64", j.Len())
	}
}

func TestMetricsRegistry(t *testing.T) {
	mr := NewMetricsRegistry()
	mr.Set("workers", int64(4))
	mr.Add("rounds", 1)
	mr.Add("rounds", 1)

	snap := mr.Snapshot()
	if snap["workers"] != int64(4) {
		t.Errorf("workers = %v, want 4", snap["workers"])
	}
	if snap["rounds"] != int64(2) {
		t.Errorf("rounds = %v, want 2", snap["rounds"])
	}

	js, err := mr.SnapshotJSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := sonnet.Unmarshal(js, &decoded); err != nil {
		t.Fatalf("snapshot does not round-trip: %v", err)
	}
	if decoded["rounds"] != float64(2) {
		t.Errorf("decoded rounds = %v, want 2", decoded["rounds"])
	}
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("answer", func() any { return 42 })

	state := dp.DumpState()
	if state["answer"] != 42 {
		t.Fatalf("probe output = %v, want 42", state["answer"])
	}

	js, err := dp.DumpJSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := sonnet.Unmarshal(js, &decoded); err != nil {
		t.Fatalf("dump does not round-trip: %v", err)
	}
	if decoded["answer"] != float64(42) {
		t.Errorf("decoded answer = %v, want 42", decoded["answer"])
	}
}
