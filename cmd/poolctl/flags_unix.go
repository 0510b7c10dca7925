//go:build unix

package main

import (
	"errors"
	"flag"

	"github.com/danmuck/poolctl/internal/jobpool"
	"github.com/danmuck/poolctl/internal/pool"
)

type options struct {
	jobs       int
	noCheck    bool
	helpUsage  bool
	configPath string
	pipe       bool
	fifo       string
}

func registerBackendFlags(fs *flag.FlagSet, opts *options) {
	fs.BoolVar(&opts.pipe, "pipe", false,
		"implement the pool with an anonymous pipe (default is a FIFO)")
	fs.StringVar(&opts.fifo, "fifo", pool.DefaultName,
		"pool FIFO file path (default ./"+pool.DefaultName+")")
}

func applyBackendFlags(cfg *jobpool.Config, opts *options, set map[string]bool) error {
	if set["pipe"] && set["fifo"] {
		return errors.New("--pipe and --fifo are mutually exclusive")
	}
	if set["pipe"] {
		cfg.Backend = jobpool.BackendPipe
	}
	if set["fifo"] {
		cfg.Backend = jobpool.BackendFIFO
		cfg.FifoPath = opts.fifo
	}
	return nil
}
