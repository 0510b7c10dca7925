//go:build unix

package pool

import (
	"testing"

	"github.com/danmuck/poolctl/internal/testutil/testlog"
)

func TestPipeCreatePreloadsTokens(t *testing.T) {
	testlog.Start(t)
	p, err := NewPipe(5)
	if err != nil {
		t.Fatalf("create pipe pool: %v", err)
	}
	defer p.Close()

	n, err := p.Drain()
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 preloaded tokens, got %d", n)
	}
}

func TestPipeAdvertisesChildDescriptors(t *testing.T) {
	testlog.Start(t)
	p, err := NewPipe(5)
	if err != nil {
		t.Fatalf("create pipe pool: %v", err)
	}
	defer p.Close()

	want := " -j5 --jobserver-fds=3,4 --jobserver-auth=3,4"
	if got := p.Makeflags(); got != want {
		t.Fatalf("advertisement mismatch: got %q want %q", got, want)
	}
	if files := p.InheritedFiles(); len(files) != 2 {
		t.Fatalf("expected both pipe ends inherited, got %d files", len(files))
	}
}
