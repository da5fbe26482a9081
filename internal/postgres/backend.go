// Package postgres implements the Cupboard on PostgreSQL through a pgx
// connection pool. The database is the source of truth; Attach only creates
// missing tables.
package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/carta/pkg/types"
)

// connectTimeout bounds pool creation, ping and schema setup in Attach.
const connectTimeout = 10 * time.Second

// Backend implements types.Cupboard over a pgxpool.Pool.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	pool     *pgxpool.Pool
	tables   map[string]types.Table
}

var _ types.Cupboard = (*Backend)(nil)

// NewBackend creates a detached postgres backend.
func NewBackend() *Backend {
	return &Backend{tables: make(map[string]types.Table)}
}

// GetTable returns the Table for the given name.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCupboardDetached
	}
	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach connects to config.DSN, verifies the connection and creates the
// schema.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendPostgres {
		return types.ErrBackendUnknown
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(config.DSN)
	if err != nil {
		return fmt.Errorf("parsing dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("pinging postgres: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			pool.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	b.pool = pool
	b.tables[types.DishesTable] = &dishesTable{backend: b}
	b.tables[types.RestaurantsTable] = &restaurantsTable{backend: b}
	b.attached = true
	return nil
}

// Detach closes the pool. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.pool.Close()
	b.pool = nil
	b.attached = false
	b.tables = make(map[string]types.Table)
	return nil
}

// acquire returns the pool while the backend is attached. Concurrency is
// left to PostgreSQL; b.mu only guards the attach state.
func (b *Backend) acquire() (*pgxpool.Pool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCupboardDetached
	}
	return b.pool, nil
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
