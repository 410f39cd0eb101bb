// File: facade/export.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Entry-point export table. Hosts that bind the dispatcher into a
// larger runtime register these five functions under well-known names,
// mirroring how the dispatch core is traditionally surfaced to its
// caller as a set of addressable entry points.

package facade

import (
	"unsafe"

	"github.com/momentics/hioload-dispatch/api"
)

// EntryPoints is the complete host-facing surface of a Dispatcher.
type EntryPoints struct {
	SetCAS        func(api.CASFunc) error
	LaunchThreads func(n int)
	AddTask       func(fn api.KernelFunc, args, dims, steps, data unsafe.Pointer)
	Ready         func()
	Synchronize   func()
}

// Export returns the dispatcher's entry points as function values.
func (d *Dispatcher) Export() EntryPoints {
	return EntryPoints{
		SetCAS:        d.InstallCAS,
		LaunchThreads: d.LaunchThreads,
		AddTask:       d.AddTask,
		Ready:         d.Ready,
		Synchronize:   d.Synchronize,
	}
}

// Table returns the entry points keyed by their canonical names, for
// hosts that resolve them dynamically.
func (e EntryPoints) Table() map[string]any {
	return map[string]any{
		"set_cas":        e.SetCAS,
		"launch_threads": e.LaunchThreads,
		"add_task":       e.AddTask,
		"ready":          e.Ready,
		"synchronize":    e.Synchronize,
	}
}
