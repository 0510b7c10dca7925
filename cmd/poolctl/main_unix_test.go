//go:build unix

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/danmuck/poolctl/internal/jobpool"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, helpUsage, err := parseArgs([]string{"make", "-C", "src"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if helpUsage {
		t.Fatalf("help-usage should be off by default")
	}
	if cfg.Jobs != runtime.NumCPU() {
		t.Fatalf("default jobs should be the CPU count, got %d", cfg.Jobs)
	}
	if cfg.Backend != jobpool.BackendFIFO {
		t.Fatalf("default backend should be fifo, got %q", cfg.Backend)
	}
	if !reflect.DeepEqual(cfg.Command, []string{"make", "-C", "src"}) {
		t.Fatalf("unexpected command remainder: %v", cfg.Command)
	}
}

func TestParseArgsJobsForms(t *testing.T) {
	for _, args := range [][]string{
		{"-j10", "true"},
		{"-j", "10", "true"},
		{"--jobs=10", "true"},
		{"--jobs", "10", "true"},
		{"--fifo", "/tmp/my_build_jobs", "-j10", "true"},
		{"--fifo=/tmp/my_build_jobs", "-j10", "true"},
	} {
		cfg, _, err := parseArgs(args)
		if err != nil {
			t.Fatalf("parse %v: %v", args, err)
		}
		if cfg.Jobs != 10 {
			t.Fatalf("parse %v: expected 10 jobs, got %d", args, cfg.Jobs)
		}
		if !reflect.DeepEqual(cfg.Command, []string{"true"}) {
			t.Fatalf("parse %v: unexpected command remainder: %v", args, cfg.Command)
		}
	}
}

func TestParseArgsHelpUsage(t *testing.T) {
	cfg, helpUsage, err := parseArgs([]string{"--help-usage"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !helpUsage {
		t.Fatalf("expected help-usage to be set")
	}
	if len(cfg.Command) != 0 {
		t.Fatalf("unexpected command remainder: %v", cfg.Command)
	}
}

func TestParseArgsRemainderIsUntouched(t *testing.T) {
	cfg, _, err := parseArgs([]string{"-j4", "sh", "-c", "make -j99"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(cfg.Command, []string{"sh", "-c", "make -j99"}) {
		t.Fatalf("remainder was rewritten: %v", cfg.Command)
	}
}

func TestParseArgsPipeAndFifoAreExclusive(t *testing.T) {
	if _, _, err := parseArgs([]string{"--pipe", "--fifo", "/tmp/jobs", "true"}); err == nil {
		t.Fatalf("expected --pipe and --fifo to be rejected together")
	}
}

func TestParseArgsFifoSelectsPathAndBackend(t *testing.T) {
	cfg, _, err := parseArgs([]string{"--fifo", "/tmp/my_build_jobs", "true"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Backend != jobpool.BackendFIFO || cfg.FifoPath != "/tmp/my_build_jobs" {
		t.Fatalf("unexpected backend config: %q %q", cfg.Backend, cfg.FifoPath)
	}
}

func TestParseArgsFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("jobs = 2\nno_check = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := parseArgs([]string{"--config", path, "-j8", "true"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Jobs != 8 {
		t.Fatalf("explicit -j should win over the config file, got %d", cfg.Jobs)
	}
	if !cfg.NoCheck {
		t.Fatalf("config file no_check should apply when no flag overrides it")
	}
}

func TestExpandJobsShorthandStopsAtRemainder(t *testing.T) {
	got := expandJobsShorthand([]string{"-j10", "--pipe", "tar", "-jxf", "archive.txz"})
	want := []string{"-j", "10", "--pipe", "tar", "-jxf", "archive.txz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("shorthand expansion mismatch: got %v want %v", got, want)
	}
}

func TestExpandJobsShorthandSkipsFlagValues(t *testing.T) {
	got := expandJobsShorthand([]string{"--fifo", "/tmp/jobs", "-j10", "jxf", "-j2"})
	want := []string{"--fifo", "/tmp/jobs", "-j", "10", "jxf", "-j2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("shorthand expansion mismatch: got %v want %v", got, want)
	}
}
