package tools

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// CommandSpec describes one supervised command invocation.
type CommandSpec struct {
	// Argv is the command line; Argv[0] is resolved through PATH.
	Argv []string
	// Env is the full child environment. Nil inherits this process's.
	Env []string
	// InheritedFiles are passed to the child as descriptors 3, 4, ...
	InheritedFiles []*os.File
	// Stdin/Stdout/Stderr default to this process's streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner abstracts supervised command execution for the pool service.
type CommandRunner interface {
	Run(spec CommandSpec) (int, error)
}

// ExecRunner executes commands on the local host, blocking until the
// immediate child exits. No timeout and no retries: job-slot cooperation is
// advisory, and a hung descendant hangs the supervisor.
type ExecRunner struct{}

func (r ExecRunner) Run(spec CommandSpec) (int, error) {
	if len(spec.Argv) == 0 {
		return 1, errors.New("tools: empty command")
	}
	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	cmd.Env = spec.Env
	cmd.ExtraFiles = spec.InheritedFiles
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The child ran and failed; its code propagates verbatim.
		return exitErr.ExitCode(), nil
	}

	exitCode := 1
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		exitCode = 127
	}
	return exitCode, err
}
