// Package sqlite provides the public API for the SQLite Cupboard backend.
// It exposes the factory while keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/carta/internal/sqlite"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".carta-db",
//	})
//	defer backend.Detach()
func NewBackend() types.Cupboard {
	return sqlite.NewBackend()
}
