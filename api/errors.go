// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for the dispatch library.

package api

import "errors"

var (
	// ErrNilCAS indicates an attempt to install a nil CAS capability.
	ErrNilCAS = errors.New("nil CAS capability")

	// ErrCASInstalled indicates the set-once CAS capability was already installed.
	ErrCASInstalled = errors.New("CAS capability already installed")
)
