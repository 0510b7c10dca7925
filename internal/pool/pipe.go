//go:build unix

package pool

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/danmuck/poolctl/internal/protocol/makeflags"
)

// Child-visible descriptor numbers for the pipe ends. exec.Cmd renumbers
// inherited extra files to 3, 4, ... in spawn order, so the advertised
// auth value always names these, whatever the parent-side numbers are.
const (
	childReadFD  = 3
	childWriteFD = 4
)

// Pipe is a reservoir backed by an anonymous pipe whose ends are passed to
// the immediate child explicitly. It does not survive an exec that closes
// non-inherited descriptors; a compatibility and testing mode, not the
// recommended default.
type Pipe struct {
	jobs int
	r    *os.File
	w    *os.File
}

// NewPipe creates an anonymous pipe preloaded with jobs-1 tokens.
func NewPipe(jobs int) (*Pipe, error) {
	if jobs < 1 {
		return nil, ErrNonPositiveJobs
	}
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create jobs pipe: %w", err)
	}
	if jobs > 1 {
		if _, err := w.Write(tokenBytes(jobs-1)); err != nil {
			r.Close()
			w.Close()
			return nil, fmt.Errorf("create jobs pipe: preload tokens: %w", err)
		}
	}
	return &Pipe{jobs: jobs, r: r, w: w}, nil
}

func (p *Pipe) Makeflags() string {
	return makeflags.PipePool(p.jobs, childReadFD, childWriteFD)
}

// InheritedFiles returns the pipe ends in advertisement order: the read end
// lands on descriptor 3 in the child, the write end on 4.
func (p *Pipe) InheritedFiles() []*os.File {
	return []*os.File{p.r, p.w}
}

func (p *Pipe) Drain() (int, error) {
	fd := int(p.r.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		return 0, fmt.Errorf("drain jobs pipe: set non-blocking: %w", err)
	}
	n, err := drainFD(fd)
	if err != nil {
		return n, fmt.Errorf("drain jobs pipe: %w", err)
	}
	return n, nil
}

func (p *Pipe) Close() error {
	errRead := p.r.Close()
	errWrite := p.w.Close()
	if errRead != nil {
		return fmt.Errorf("close jobs pipe: %w", errRead)
	}
	if errWrite != nil {
		return fmt.Errorf("close jobs pipe: %w", errWrite)
	}
	return nil
}
