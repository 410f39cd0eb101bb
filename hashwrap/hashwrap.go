// File: hashwrap/hashwrap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A small wrapper caching the hash of the value it wraps, for hosts
// that key dispatch-related lookup tables by values whose hash is
// expensive to recompute. The hash is computed on first demand and
// cached; equality always delegates to the wrapped value. Standalone:
// the dispatch core itself never uses it.

package hashwrap

import "hash/maphash"

// seed is fixed per process so equal values hash equally across
// wrappers within one process, matching map semantics.
var seed = maphash.MakeSeed()

// HashFunc computes a 64-bit hash of a value. Wrappers built with
// WrapFunc use it in place of the default maphash-based hash.
type HashFunc[K comparable] func(K) uint64

// Wrapped is satisfied by every Wrapper instantiation and by nothing
// else. It lets WrapAny recognize an existing wrapper regardless of
// its type parameter.
type Wrapped interface {
	Hash() uint64
	isWrapper()
}

// Wrapper caches the hash of the value it wraps. Not safe for
// concurrent first use; intended for single-threaded key preparation.
type Wrapper[K comparable] struct {
	value  K
	hashFn HashFunc[K]
	hash   uint64
	hashed bool
}

// Wrap returns a wrapper hashing with the process-wide maphash seed.
func Wrap[K comparable](v K) *Wrapper[K] {
	return &Wrapper[K]{value: v}
}

// WrapFunc returns a wrapper hashing with the supplied function.
func WrapFunc[K comparable](v K, h HashFunc[K]) *Wrapper[K] {
	return &Wrapper[K]{value: v, hashFn: h}
}

// WrapAny is the dynamic entry point: wrapping a value that is already
// a wrapper, of any instantiation, returns it unchanged; anything else
// is wrapped as a Wrapper[any]. The generic Wrap cannot express this
// identity, since its return type follows the argument type. Hashing a
// wrapped value whose dynamic type is not comparable panics, like a
// map key of that type would.
func WrapAny(v any) Wrapped {
	if w, ok := v.(Wrapped); ok {
		return w
	}
	return Wrap[any](v)
}

// Value returns the wrapped value.
func (w *Wrapper[K]) Value() K {
	return w.value
}

func (w *Wrapper[K]) isWrapper() {}

// Hash returns the value's hash, computing it on the first call only.
func (w *Wrapper[K]) Hash() uint64 {
	if !w.hashed {
		if w.hashFn != nil {
			w.hash = w.hashFn(w.value)
		} else {
			w.hash = maphash.Comparable(seed, w.value)
		}
		w.hashed = true
	}
	return w.hash
}

// Equal reports whether the wrapped values are equal. A nil other is
// never equal. Comparison unwraps both sides, so two wrappers are
// equal exactly when their values are.
func (w *Wrapper[K]) Equal(other *Wrapper[K]) bool {
	return other != nil && w.value == other.value
}

// EqualValue reports whether the wrapped value equals v.
func (w *Wrapper[K]) EqualValue(v K) bool {
	return w.value == v
}
