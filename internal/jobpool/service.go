// Package jobpool wires the token reservoir, the environment advertisement,
// and the supervised command into one run.
package jobpool

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/poolctl/internal/pool"
	"github.com/danmuck/poolctl/internal/protocol/makeflags"
	"github.com/danmuck/poolctl/internal/tools"
)

// BackendKind selects the OS primitive backing the reservoir.
type BackendKind string

const (
	BackendFIFO      BackendKind = "fifo"
	BackendPipe      BackendKind = "pipe"
	BackendSemaphore BackendKind = "semaphore"
)

// ExitAuditFailure is the fixed exit code for a conservation violation.
// It never masks a child failure: the audit only runs after the child
// exited with code 0.
const ExitAuditFailure = 1

// Config shapes one supervised run.
type Config struct {
	// Jobs is the slot ceiling. The pool holds Jobs-1 tokens; the child
	// keeps one implicit slot. Jobs <= 0 disables the feature entirely.
	Jobs int
	// Backend selects the reservoir primitive; zero value means the
	// platform default.
	Backend BackendKind
	// FifoPath is the FIFO backend's filesystem path.
	FifoPath string
	// SemaphoreName is the semaphore backend's system-wide object name.
	SemaphoreName string
	// NoCheck skips the post-run conservation audit.
	NoCheck bool
	// Command is the supervised command line.
	Command []string

	// Runner defaults to tools.ExecRunner. Tests substitute it.
	Runner tools.CommandRunner
	// Stdout/Stderr are handed to the child; nil means this process's.
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig matches an invocation with no flags: one slot per CPU,
// the platform's default backend, default pool name.
func DefaultConfig() Config {
	return Config{
		Jobs:          runtime.NumCPU(),
		Backend:       defaultBackend,
		FifoPath:      pool.DefaultName,
		SemaphoreName: pool.DefaultName,
	}
}

// Run creates the reservoir, advertises it to the command's environment,
// supervises the command to completion, and audits token conservation.
// The returned code is the process exit code; err carries the diagnostic
// for any non-child failure.
func Run(cfg Config) (int, error) {
	if len(cfg.Command) == 0 {
		return 1, errors.New("jobpool: a command to supervise is required")
	}
	runner := cfg.Runner
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	spec := tools.CommandSpec{
		Argv:   cfg.Command,
		Stdout: cfg.Stdout,
		Stderr: cfg.Stderr,
	}

	if cfg.Jobs <= 0 {
		// Feature disabled: environment untouched, exit code verbatim.
		log.Debug().Msg("jobs pool disabled, running command directly")
		return runner.Run(spec)
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return 1, err
	}
	defer backend.Close()

	value := backend.Makeflags()
	spec.Env = makeflags.Replace(os.Environ(), value)
	spec.InheritedFiles = backend.InheritedFiles()
	log.Debug().
		Int("jobs", cfg.Jobs).
		Int("tokens", cfg.Jobs-1).
		Str("makeflags", value).
		Msg("jobs pool advertised")

	code, err := runner.Run(spec)
	if err != nil {
		return code, fmt.Errorf("supervise %q: %w", cfg.Command[0], err)
	}
	if code != 0 {
		// The reservoir state after a failed run is not meaningful;
		// the audit is skipped, not merely ignored.
		log.Debug().Int("exit_code", code).Msg("command failed, skipping pool audit")
		return code, nil
	}
	if cfg.NoCheck {
		return 0, nil
	}

	if err := pool.Audit(backend, cfg.Jobs); err != nil {
		var conservation *pool.ConservationError
		if errors.As(err, &conservation) {
			log.Warn().
				Int("expected", conservation.Expected).
				Int("measured", conservation.Measured).
				Msg("jobs pool conservation check failed")
		}
		return ExitAuditFailure, err
	}
	log.Debug().Int("tokens", cfg.Jobs-1).Msg("jobs pool conservation check passed")
	return 0, nil
}
