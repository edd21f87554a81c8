package config

import "time"

// LedgerBackend selects the key-value store behind the relay ledger.
type LedgerBackend string

const (
	// LedgerBackendMemDB keeps ledger state in memory only
	LedgerBackendMemDB LedgerBackend = "memdb"

	// LedgerBackendGoLevelDB persists ledger state under <NodeHome>/data
	LedgerBackendGoLevelDB LedgerBackend = "goleveldb"
)

type Config struct {
	// Log Config
	LogLevel   int    `json:"log_level"`   // e.g., 0 = debug, 1 = info, etc.
	LogFormat  string `json:"log_format"`  // "json" or "console"
	LogSampler bool   `json:"log_sampler"` // if true, samples logs (e.g., 1 in 5)

	// Node Config
	NodeHome string `json:"node_home"` // Node home directory (default: ~/.arenad)

	// Ledger Config
	ProgramID        string        `json:"program_id"`         // Program id every record address is derived under
	LedgerBackend    LedgerBackend `json:"ledger_backend"`     // memdb or goleveldb (default: memdb)
	BlockIntervalMs  int           `json:"block_interval_ms"`  // How often pending requests are sealed into a block (default: 500)
	MaxBlockRequests int           `json:"max_block_requests"` // Requests per block before an early seal (default: 256)

	// Query Server Config
	QueryServerPort int `json:"query_server_port"` // Port for HTTP query server (default: 8080)

	// Index Config
	DatabaseFile                  string `json:"database_file"`                    // SQLite outcome index under <NodeHome>/data (default: arena_index.db)
	JournalCleanupIntervalSeconds int    `json:"journal_cleanup_interval_seconds"` // How often to prune the request journal (default: 3600)
	JournalRetentionPeriodSeconds int    `json:"journal_retention_period_seconds"` // How long journal rows are kept (default: 86400)
}

// JournalCleanupInterval returns JournalCleanupIntervalSeconds as a duration.
func (c Config) JournalCleanupInterval() time.Duration {
	return time.Duration(c.JournalCleanupIntervalSeconds) * time.Second
}

// JournalRetentionPeriod returns JournalRetentionPeriodSeconds as a duration.
func (c Config) JournalRetentionPeriod() time.Duration {
	return time.Duration(c.JournalRetentionPeriodSeconds) * time.Second
}

// BlockInterval returns BlockIntervalMs as a duration.
func (c Config) BlockInterval() time.Duration {
	return time.Duration(c.BlockIntervalMs) * time.Millisecond
}
