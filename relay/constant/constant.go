package constant

import "os"

// <NodeDir>/                    (e.g., /home/arena/.arenad)
// └── config/
//	└── arenad_config.json
// └── data/
//	└── ledger.db/               (goleveldb backend only)
//	└── arena_index.db

const (
	NodeDir = ".arenad"

	ConfigSubdir   = "config"
	ConfigFileName = "arenad_config.json"

	DataSubdir = "data"

	// EnvPrefix scopes the environment overrides, e.g. ARENAD_LOG_LEVEL.
	EnvPrefix = "ARENAD"
)

var DefaultNodeHome = os.ExpandEnv("$HOME/") + NodeDir
