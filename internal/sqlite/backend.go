// Package sqlite implements the SQLite storage backend for carta.
//
// SQLite is used as the query engine; JSONL files in the data directory are
// the source of truth. Attach rebuilds the database from the JSONL files and
// every committed write is mirrored back to them according to the configured
// sync strategy.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/carta/pkg/types"
)

// dbFileName is the SQLite file created inside the data directory.
const dbFileName = "carta.db"

// Backend implements the Cupboard interface using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	tables   map[string]types.Table

	// Sync strategy state.
	syncStrategy  string
	batchSize     int
	batchInterval time.Duration
	pending       map[string]bool // JSONL files awaiting a write
	pendingWrites int             // writes queued since the last flush
	batchTimer    *time.Timer
	batchMu       sync.Mutex // protects pending, pendingWrites and batchTimer
}

var _ types.Cupboard = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables:  make(map[string]types.Table),
		pending: make(map[string]bool),
	}
}

// GetTable returns the Table for the given name.
// Returns ErrCupboardDetached if the backend is not attached and
// ErrTableNotFound if the name is not a standard table.
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

// Attach initializes the backend with the given configuration. It creates
// DataDir if needed, builds a fresh SQLite schema, creates missing JSONL
// files, and loads their records.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendSQLite {
		return types.ErrBackendUnknown
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is derived state; start from an empty file every time.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.syncStrategy = config.SQLiteConfig.GetSyncStrategy()
	b.batchSize = config.SQLiteConfig.GetBatchSize()
	b.batchInterval = time.Duration(config.SQLiteConfig.GetBatchInterval()) * time.Second
	b.pending = make(map[string]bool)
	b.pendingWrites = 0
	b.attached = true

	b.tables[types.DishesTable] = &dishesTable{backend: b}
	b.tables[types.RestaurantsTable] = &restaurantsTable{backend: b}

	if b.syncStrategy == types.SyncBatch && b.batchInterval > 0 {
		b.startBatchTimer()
	}
	return nil
}

// Detach flushes pending JSONL writes and closes the SQLite connection.
// After Detach, all operations return ErrCupboardDetached. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.stopBatchTimer()
	if err := b.flushPending(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)
	return nil
}

// newUUID generates a UUID v7 string, falling back to v4 if the clock source
// fails.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// commit finishes a write transaction and mirrors the given data files.
//
// With the immediate strategy the files are rendered from inside tx before
// anything is committed, so a record that cannot be encoded rolls the write
// back. The files are then written and tx committed. When a file write or
// the commit fails, tx is rolled back and the files already rewritten are
// restored from the committed state. Deferred strategies commit first and
// queue the files. The caller must hold b.mu.
func (b *Backend) commit(tx *sql.Tx, files ...string) error {
	if b.syncStrategy != types.SyncImmediate && b.syncStrategy != "" {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing: %w", err)
		}
		b.queueWrite(files...)
		return nil
	}

	rendered := make([][]json.RawMessage, len(files))
	for i, f := range files {
		records, err := dumpJSONL(tx, f)
		if err != nil {
			return fmt.Errorf("dumping %s: %w", f, err)
		}
		rendered[i] = records
	}
	for i, f := range files {
		if err := writeJSONL(filepath.Join(b.dataDir, f), rendered[i]); err != nil {
			_ = tx.Rollback()
			b.restoreFiles(files[:i])
			return fmt.Errorf("persisting %s: %w", f, err)
		}
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		b.restoreFiles(files)
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// restoreFiles rewrites files from the committed database. Errors are
// dropped: the next successful write of the same table repairs the file.
func (b *Backend) restoreFiles(files []string) {
	for _, f := range files {
		_ = b.writeFile(f)
	}
}

// writeFile dumps one table to its JSONL file.
func (b *Backend) writeFile(file string) error {
	records, err := dumpJSONL(b.db, file)
	if err != nil {
		return fmt.Errorf("dumping %s: %w", file, err)
	}
	if err := writeJSONL(filepath.Join(b.dataDir, file), records); err != nil {
		return fmt.Errorf("persisting %s: %w", file, err)
	}
	return nil
}

// queueWrite marks files dirty. Files are dumped from the database at flush
// time, so several writes to one table collapse into a single file write.
// For the batch strategy the queue is flushed once BatchSize writes pile up.
func (b *Backend) queueWrite(files ...string) {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	for _, f := range files {
		b.pending[f] = true
	}
	b.pendingWrites++

	if b.syncStrategy == types.SyncBatch && b.batchSize > 0 && b.pendingWrites >= b.batchSize {
		_ = b.flushPendingLocked()
	}
}

// flushPending writes every dirty file. The caller must hold b.mu.
func (b *Backend) flushPending() error {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()
	return b.flushPendingLocked()
}

// flushPendingLocked writes every dirty file. The caller must hold b.batchMu.
// Files are written in load order; a failure leaves the remaining files
// dirty for the next flush.
func (b *Backend) flushPendingLocked() error {
	for _, f := range jsonlFiles {
		if !b.pending[f] {
			continue
		}
		if err := b.writeFile(f); err != nil {
			return err
		}
		delete(b.pending, f)
	}
	b.pendingWrites = 0
	return nil
}

// startBatchTimer starts the periodic flush for the batch strategy.
func (b *Backend) startBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		return
	}

	b.batchTimer = time.AfterFunc(b.batchInterval, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if !b.attached {
			return
		}
		_ = b.flushPending()

		b.batchMu.Lock()
		if b.batchTimer != nil {
			b.batchTimer.Reset(b.batchInterval)
		}
		b.batchMu.Unlock()
	})
}

// stopBatchTimer stops the periodic flush if running.
func (b *Backend) stopBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		b.batchTimer.Stop()
		b.batchTimer = nil
	}
}
