package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"

	"github.com/arenaledger/arena-node/relay/constant"
)

//go:embed default_config.json
var defaultConfigJSON []byte

func validateConfig(cfg *Config) error {
	// Validate log level
	if cfg.LogLevel < 0 || cfg.LogLevel > 5 {
		return fmt.Errorf("log level must be between 0 and 5")
	}

	// Validate log format
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("log format must be 'json' or 'console'")
	}

	if cfg.NodeHome == "" {
		cfg.NodeHome = constant.DefaultNodeHome
	}

	// Set defaults for ledger config
	if cfg.ProgramID == "" {
		var defaultCfg Config
		if err := json.Unmarshal(defaultConfigJSON, &defaultCfg); err != nil {
			return fmt.Errorf("failed to read default config: %w", err)
		}
		cfg.ProgramID = defaultCfg.ProgramID
	}
	if _, err := solana.PublicKeyFromBase58(cfg.ProgramID); err != nil {
		return fmt.Errorf("program id %q is not a base58 public key", cfg.ProgramID)
	}
	if cfg.LedgerBackend == "" {
		cfg.LedgerBackend = LedgerBackendMemDB
	}
	if cfg.LedgerBackend != LedgerBackendMemDB && cfg.LedgerBackend != LedgerBackendGoLevelDB {
		return fmt.Errorf("ledger backend must be 'memdb' or 'goleveldb'")
	}
	if cfg.BlockIntervalMs < 0 {
		return fmt.Errorf("block interval must not be negative")
	}
	if cfg.BlockIntervalMs == 0 {
		cfg.BlockIntervalMs = 500
	}
	if cfg.MaxBlockRequests == 0 {
		cfg.MaxBlockRequests = 256
	}

	// Set defaults for query server
	if cfg.QueryServerPort == 0 {
		cfg.QueryServerPort = 8080
	}

	// Set defaults for the index
	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = "arena_index.db"
	}
	if cfg.JournalCleanupIntervalSeconds == 0 {
		cfg.JournalCleanupIntervalSeconds = 3600
	}
	if cfg.JournalRetentionPeriodSeconds == 0 {
		cfg.JournalRetentionPeriodSeconds = 86400
	}

	return nil
}

// Validate checks cfg and fills unset fields with their defaults.
func Validate(cfg *Config) error {
	return validateConfig(cfg)
}

// Save writes the given config to <NodeDir>/config/arenad_config.json.
func Save(cfg *Config, basePath string) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	configDir := filepath.Join(basePath, constant.ConfigSubdir)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, constant.ConfigFileName)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads and returns the config from <BasePath>/config/arenad_config.json.
func Load(basePath string) (Config, error) {
	configFile := filepath.Join(basePath, constant.ConfigSubdir, constant.ConfigFileName)
	data, err := os.ReadFile(filepath.Clean(configFile))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the default configuration from embedded JSON
func LoadDefaultConfig() (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(defaultConfigJSON, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default config: %w", err)
	}
	return &cfg, nil
}
