package types

import "errors"

// Config holds backend selection and parameters for Cupboard.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// DSN is the connection string for the postgres backend.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`

	// SQLiteConfig tunes how the sqlite backend writes its JSONL files.
	SQLiteConfig *SQLiteConfig `json:"sqlite_config,omitempty" yaml:"sqlite_config,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Sync strategies for the sqlite backend. They decide when SQLite changes
// are written back to the JSONL files.
const (
	SyncImmediate = "immediate" // after every write (default)
	SyncOnClose   = "on_close"  // once, on Detach
	SyncBatch     = "batch"     // every BatchSize writes or BatchInterval seconds
)

// Sync defaults.
const (
	DefaultBatchSize     = 100
	DefaultBatchInterval = 5
)

// SQLiteConfig holds sqlite backend options. A nil *SQLiteConfig is valid and
// yields the defaults.
type SQLiteConfig struct {
	SyncStrategy  string `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty"`
	BatchSize     int    `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`
	BatchInterval int    `json:"batch_interval,omitempty" yaml:"batch_interval,omitempty"` // seconds
}

// GetSyncStrategy returns the configured strategy or SyncImmediate.
func (c *SQLiteConfig) GetSyncStrategy() string {
	if c == nil || c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}

// GetBatchSize returns the configured batch size or DefaultBatchSize.
func (c *SQLiteConfig) GetBatchSize() int {
	if c == nil || c.BatchSize == 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

// GetBatchInterval returns the configured batch interval in seconds or
// DefaultBatchInterval.
func (c *SQLiteConfig) GetBatchInterval() int {
	if c == nil || c.BatchInterval == 0 {
		return DefaultBatchInterval
	}
	return c.BatchInterval
}

// Validate checks the sqlite options.
func (c *SQLiteConfig) Validate() error {
	if c == nil {
		return nil
	}
	switch c.GetSyncStrategy() {
	case SyncImmediate, SyncOnClose, SyncBatch:
	default:
		return ErrSyncStrategyUnknown
	}
	if c.BatchSize < 0 {
		return ErrBatchSizeInvalid
	}
	if c.BatchInterval < 0 {
		return ErrBatchIntervalInvalid
	}
	return nil
}

// Config validation errors.
var (
	ErrBackendEmpty         = errors.New("backend must not be empty")
	ErrBackendUnknown       = errors.New("unknown backend")
	ErrDSNEmpty             = errors.New("dsn must not be empty for the postgres backend")
	ErrSyncStrategyUnknown  = errors.New("unknown sync strategy")
	ErrBatchSizeInvalid     = errors.New("batch size must be positive")
	ErrBatchIntervalInvalid = errors.New("batch interval must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendMemory:   true,
	BackendPostgres: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendPostgres && c.DSN == "" {
		return ErrDSNEmpty
	}
	return c.SQLiteConfig.Validate()
}
