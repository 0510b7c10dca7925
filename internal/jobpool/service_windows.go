package jobpool

import (
	"fmt"

	"github.com/danmuck/poolctl/internal/pool"
)

const defaultBackend = BackendSemaphore

func newBackend(cfg Config) (pool.Backend, error) {
	switch cfg.Backend {
	case BackendSemaphore, "":
		return pool.NewSemaphore(cfg.SemaphoreName, cfg.Jobs)
	default:
		return nil, fmt.Errorf("jobpool: backend %q is not supported on this platform", cfg.Backend)
	}
}
