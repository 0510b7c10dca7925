package main

import (
	"flag"

	"github.com/danmuck/poolctl/internal/jobpool"
	"github.com/danmuck/poolctl/internal/pool"
)

type options struct {
	jobs       int
	noCheck    bool
	helpUsage  bool
	configPath string
	name       string
}

func registerBackendFlags(fs *flag.FlagSet, opts *options) {
	fs.StringVar(&opts.name, "name", pool.DefaultName,
		"semaphore name (default "+pool.DefaultName+")")
}

func applyBackendFlags(cfg *jobpool.Config, opts *options, set map[string]bool) error {
	if set["name"] {
		cfg.Backend = jobpool.BackendSemaphore
		cfg.SemaphoreName = opts.name
	}
	return nil
}
