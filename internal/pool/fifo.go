//go:build unix

package pool

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/danmuck/poolctl/internal/protocol/makeflags"
)

// FIFO is a reservoir backed by a named FIFO on the filesystem. Any
// descendant anywhere in the tree can rediscover it by path, independent of
// descriptor inheritance, which makes it the default POSIX backend.
type FIFO struct {
	jobs    int
	path    string
	readFD  int
	writeFD int
}

// NewFIFO creates a named FIFO at path, replacing any stale file there, and
// preloads it with jobs-1 tokens. Both ends stay open non-blocking in this
// process for the lifetime of the pool.
func NewFIFO(path string, jobs int) (*FIFO, error) {
	if jobs < 1 {
		return nil, ErrNonPositiveJobs
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("create jobs fifo: %w", err)
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("create jobs fifo: remove stale %q: %w", abs, err)
	}
	if err := unix.Mkfifo(abs, 0o666); err != nil {
		return nil, fmt.Errorf("create jobs fifo %q: %w", abs, err)
	}

	// Read end first: a non-blocking O_WRONLY open fails until a reader
	// exists. Keeping both ends open here pins the FIFO alive across
	// client opens and closes.
	readFD, err := unix.Open(abs, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		os.Remove(abs)
		return nil, fmt.Errorf("create jobs fifo %q: open read end: %w", abs, err)
	}
	writeFD, err := unix.Open(abs, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		unix.Close(readFD)
		os.Remove(abs)
		return nil, fmt.Errorf("create jobs fifo %q: open write end: %w", abs, err)
	}

	if jobs > 1 {
		if _, err := unix.Write(writeFD, tokenBytes(jobs-1)); err != nil {
			unix.Close(readFD)
			unix.Close(writeFD)
			os.Remove(abs)
			return nil, fmt.Errorf("create jobs fifo %q: preload tokens: %w", abs, err)
		}
	}

	return &FIFO{jobs: jobs, path: abs, readFD: readFD, writeFD: writeFD}, nil
}

// Path is the absolute FIFO path descendants rediscover the pool by.
func (f *FIFO) Path() string { return f.path }

func (f *FIFO) Makeflags() string {
	return makeflags.Pool(f.jobs, "fifo:"+f.path)
}

func (f *FIFO) InheritedFiles() []*os.File { return nil }

func (f *FIFO) Drain() (int, error) {
	n, err := drainFD(f.readFD)
	if err != nil {
		return n, fmt.Errorf("drain jobs fifo %q: %w", f.path, err)
	}
	return n, nil
}

// Close closes both ends and removes the FIFO from the filesystem.
func (f *FIFO) Close() error {
	errRead := unix.Close(f.readFD)
	errWrite := unix.Close(f.writeFD)
	errRemove := os.Remove(f.path)
	if errRead != nil {
		return fmt.Errorf("close jobs fifo %q: %w", f.path, errRead)
	}
	if errWrite != nil {
		return fmt.Errorf("close jobs fifo %q: %w", f.path, errWrite)
	}
	if errRemove != nil {
		return fmt.Errorf("close jobs fifo %q: %w", f.path, errRemove)
	}
	return nil
}
