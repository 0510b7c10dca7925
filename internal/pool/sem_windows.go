package pool

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"

	"github.com/danmuck/poolctl/internal/protocol/makeflags"
)

// Semaphore is a reservoir backed by a named Windows kernel counting
// semaphore. Descendants rediscover it system-wide by name.
type Semaphore struct {
	jobs   int
	name   string
	handle windows.Handle
}

// NewSemaphore creates a named counting semaphore holding jobs-1 tokens.
// The maximum count is jobs, one above the token count: the audit's
// measurement increment momentarily returns the implicit slot and needs
// that headroom, and CreateSemaphore rejects a zero maximum outright.
func NewSemaphore(name string, jobs int) (*Semaphore, error) {
	if jobs < 1 {
		return nil, ErrNonPositiveJobs
	}
	name16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("create jobs semaphore %q: %w", name, err)
	}
	handle, err := windows.CreateSemaphore(nil, int32(jobs-1), int32(jobs), name16)
	if err != nil {
		return nil, fmt.Errorf("create jobs semaphore %q: %w", name, err)
	}
	return &Semaphore{jobs: jobs, name: name, handle: handle}, nil
}

// Name is the system-wide object name descendants rediscover the pool by.
func (s *Semaphore) Name() string { return s.name }

func (s *Semaphore) Makeflags() string {
	return makeflags.Pool(s.jobs, s.name)
}

func (s *Semaphore) InheritedFiles() []*os.File { return nil }

// Drain peeks the semaphore count without consuming it: ReleaseSemaphore
// reports the count immediately prior to its own increment. The increment is
// the implicit slot temporarily returned for measurement; the handle is
// closed right after, and no token holder can be live because the supervised
// tree has already exited.
//
// An over-releasing client can saturate the count at the maximum, making the
// measurement increment fail with ERROR_TOO_MANY_POSTS. That still pins the
// count: it is the maximum, jobs. The surplus beyond one is indistinguishable
// once saturated, so the audit reports at least one extra token.
func (s *Semaphore) Drain() (int, error) {
	var prev int32
	if err := windows.ReleaseSemaphore(s.handle, 1, &prev); err != nil {
		if errors.Is(err, windows.ERROR_TOO_MANY_POSTS) {
			return s.jobs, nil
		}
		return 0, fmt.Errorf("drain jobs semaphore %q: %w", s.name, err)
	}
	return int(prev), nil
}

func (s *Semaphore) Close() error {
	if err := windows.CloseHandle(s.handle); err != nil {
		return fmt.Errorf("close jobs semaphore %q: %w", s.name, err)
	}
	return nil
}
