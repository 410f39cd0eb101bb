// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free single-slot dispatch core: a fixed pool of OS-thread-locked
// workers, one task mailbox per worker, coordinated through a four-state
// atomic handshake driven by an externally installed CAS capability.
// No mutexes, no condition variables, no channels on the dispatch path;
// every transition is a spin-polled compare-and-swap with capped
// exponential backoff.
//
// WARNING: the producer side is not thread-safe. Adding a task to a slot
// is not protected from race conditions; the protocol assumes a single
// producer and trades full safety for minimal per-dispatch overhead.
package concurrency
