// Package pool implements the shared jobserver token reservoirs.
//
// A reservoir is an external OS object, not in-process state: once advertised,
// an unbounded set of descendant processes mutates it directly through the OS
// primitive. This process only touches it twice, once to preload tokens at
// creation and once to count them after the supervised tree has exited.
package pool

import (
	"errors"
	"os"
)

// DefaultName is the default FIFO file name and semaphore name.
const DefaultName = "jobserver_pool"

var ErrNonPositiveJobs = errors.New("pool: jobs count must be strictly positive")

// Backend is one OS-level jobserver token reservoir holding jobs-1 tokens.
type Backend interface {
	// Makeflags renders the environment advertisement for this reservoir.
	Makeflags() string

	// InheritedFiles are descriptors the supervised child must receive
	// explicitly. Nil for backends rediscovered by name or path.
	InheritedFiles() []*os.File

	// Drain consumes every immediately available token without waiting and
	// reports the count. Valid only after the supervised tree has fully
	// exited; a detached grandchild still holding an inherited descriptor
	// can race the drain, an accepted limitation of the protocol.
	Drain() (int, error)

	// Close releases the underlying OS object.
	Close() error
}
