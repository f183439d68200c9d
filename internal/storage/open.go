package storage

import (
	"fmt"

	"tracker/internal/config"
)

// OpenBackend opens the backend selected by cfg.
func OpenBackend(cfg config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		return OpenSQLite(cfg.DBPath)
	case config.BackendFile:
		return OpenFile(cfg.StateDir)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
