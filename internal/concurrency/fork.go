// File: internal/concurrency/fork.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Child-side fork hooks. Worker threads are not inherited across a
// process fork, so a child must drop its view of any launched pool and
// lazily rebuild. Hooks only drop references; pool storage is never
// reclaimed, in-flight parent workers may still touch it.

package concurrency

import "sync"

var (
	forkMu     sync.Mutex
	childHooks []func()
)

// AtForkChild registers a hook to run in a child process after fork.
// Registration order is preserved.
func AtForkChild(hook func()) {
	forkMu.Lock()
	childHooks = append(childHooks, hook)
	forkMu.Unlock()
}

// ForkChild runs all registered child hooks. Hosts that fork (embedding
// runtimes, prefork servers) call this once in the child before any
// dispatch activity. The parent never calls it.
func ForkChild() {
	forkMu.Lock()
	hooks := make([]func(), len(childHooks))
	copy(hooks, childHooks)
	forkMu.Unlock()
	for _, hook := range hooks {
		hook()
	}
}
