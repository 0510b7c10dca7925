//go:build unix

package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danmuck/poolctl/internal/testutil/testlog"
)

func TestExecRunnerPropagatesExitCode(t *testing.T) {
	testlog.Start(t)
	code, err := ExecRunner{}.Run(CommandSpec{Argv: []string{"sh", "-c", "exit 7"}})
	if err != nil {
		t.Fatalf("a failing child is not a runner error: %v", err)
	}
	if code != 7 {
		t.Fatalf("expected exit code 7, got %d", code)
	}
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	testlog.Start(t)
	var out bytes.Buffer
	code, err := ExecRunner{}.Run(CommandSpec{
		Argv:   []string{"sh", "-c", "echo supervised"},
		Stdout: &out,
	})
	if err != nil || code != 0 {
		t.Fatalf("run: code=%d err=%v", code, err)
	}
	if got := strings.TrimSpace(out.String()); got != "supervised" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestExecRunnerInjectsEnvironment(t *testing.T) {
	testlog.Start(t)
	code, err := ExecRunner{}.Run(CommandSpec{
		Argv: []string{"sh", "-c", `test "$POOLCTL_MARKER" = "set"`},
		Env:  []string{"PATH=/usr/bin:/bin", "POOLCTL_MARKER=set"},
	})
	if err != nil || code != 0 {
		t.Fatalf("child did not see injected environment: code=%d err=%v", code, err)
	}
}

func TestExecRunnerUnresolvableCommand(t *testing.T) {
	testlog.Start(t)
	code, err := ExecRunner{}.Run(CommandSpec{Argv: []string{"poolctl-no-such-binary"}})
	if err == nil {
		t.Fatalf("expected a spawn error")
	}
	if code != 127 {
		t.Fatalf("expected exit code 127 for unresolvable command, got %d", code)
	}
}

func TestExecRunnerEmptyCommand(t *testing.T) {
	testlog.Start(t)
	code, err := ExecRunner{}.Run(CommandSpec{})
	if err == nil {
		t.Fatalf("expected an error for an empty command")
	}
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
