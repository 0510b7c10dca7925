//go:build unix

package jobpool

import (
	"fmt"

	"github.com/danmuck/poolctl/internal/pool"
)

const defaultBackend = BackendFIFO

func newBackend(cfg Config) (pool.Backend, error) {
	switch cfg.Backend {
	case BackendFIFO, "":
		return pool.NewFIFO(cfg.FifoPath, cfg.Jobs)
	case BackendPipe:
		return pool.NewPipe(cfg.Jobs)
	default:
		return nil, fmt.Errorf("jobpool: backend %q is not supported on this platform", cfg.Backend)
	}
}
