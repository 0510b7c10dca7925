package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/poolctl/internal/jobpool"
)

// poolctl config.toml key mapping to pool run settings.
type fileConfig struct {
	Jobs          int    `toml:"jobs"`
	Backend       string `toml:"backend"`
	FifoPath      string `toml:"fifo_path"`
	SemaphoreName string `toml:"semaphore_name"`
	NoCheck       bool   `toml:"no_check"`
}

// poolctl loader for TOML defaults with built-in overlay. Keys absent from
// the file keep the defaults passed in; explicit CLI flags override both.
func loadFileConfig(path string, cfg jobpool.Config) (jobpool.Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return jobpool.Config{}, fmt.Errorf("load pool config: %w", err)
	}

	if meta.IsDefined("jobs") {
		cfg.Jobs = raw.Jobs
	}
	if meta.IsDefined("backend") {
		kind := jobpool.BackendKind(strings.TrimSpace(raw.Backend))
		switch kind {
		case jobpool.BackendFIFO, jobpool.BackendPipe, jobpool.BackendSemaphore:
			cfg.Backend = kind
		default:
			return jobpool.Config{}, fmt.Errorf(
				"load pool config: unsupported backend %q (expected fifo, pipe or semaphore)",
				raw.Backend,
			)
		}
	}
	if meta.IsDefined("fifo_path") {
		p := strings.TrimSpace(raw.FifoPath)
		if p == "" {
			return jobpool.Config{}, fmt.Errorf("load pool config: fifo_path must not be empty")
		}
		cfg.FifoPath = p
	}
	if meta.IsDefined("semaphore_name") {
		n := strings.TrimSpace(raw.SemaphoreName)
		if n == "" {
			return jobpool.Config{}, fmt.Errorf("load pool config: semaphore_name must not be empty")
		}
		cfg.SemaphoreName = n
	}
	if meta.IsDefined("no_check") {
		cfg.NoCheck = raw.NoCheck
	}
	return cfg, nil
}
