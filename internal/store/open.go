// Package store selects and attaches the Cupboard backend named by a Config.
package store

import (
	"fmt"

	"github.com/mesh-intelligence/carta/internal/memory"
	"github.com/mesh-intelligence/carta/internal/postgres"
	"github.com/mesh-intelligence/carta/pkg/sqlite"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// New returns a detached Cupboard for config.Backend.
func New(config types.Config) (types.Cupboard, error) {
	switch config.Backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendMemory:
		return memory.NewBackend(), nil
	case types.BackendPostgres:
		return postgres.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}
}

// Open creates the backend for config and attaches it. The caller must
// Detach the returned Cupboard.
func Open(config types.Config) (types.Cupboard, error) {
	cupboard, err := New(config)
	if err != nil {
		return nil, err
	}
	if err := cupboard.Attach(config); err != nil {
		return nil, fmt.Errorf("attaching %s backend: %w", config.Backend, err)
	}
	return cupboard, nil
}
