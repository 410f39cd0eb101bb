// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Public contracts for hioload-dispatch: task descriptors, the CAS
// capability type, the dispatcher interface, and common errors.
// Implementations live in internal/concurrency and are exposed through
// the facade package.
package api
