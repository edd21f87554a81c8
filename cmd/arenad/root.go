package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/arenaledger/arena-node/relay/config"
	"github.com/arenaledger/arena-node/relay/constant"
)

const (
	flagHome          = "home"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
	flagProgramID     = "program-id"
	flagLedgerBackend = "ledger-backend"
	flagBlockInterval = "block-interval-ms"
	flagPort          = "port"
)

func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "arenad",
		Short:         "Arena ledger relay daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagHome, constant.DefaultNodeHome, "Node home directory")
	flags.Int(flagLogLevel, 1, "Log level (0 = debug ... 5 = panic)")
	flags.String(flagLogFormat, "console", "Log format (json|console)")
	flags.String(flagProgramID, "", "Program id records are derived under")
	flags.String(flagLedgerBackend, "", "Ledger backend (memdb|goleveldb)")
	flags.Int(flagBlockInterval, 0, "Block interval in milliseconds")
	flags.Int(flagPort, 0, "Query server port")

	bindEnv(v, flags)

	InitRootCmd(rootCmd, v) // add subcommands like `start` and `version`

	return rootCmd
}

// bindEnv makes every persistent flag readable from ARENAD_<FLAG> as well.
func bindEnv(v *viper.Viper, flags *pflag.FlagSet) {
	v.SetEnvPrefix(constant.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
}

// loadConfig reads <home>/config/arenad_config.json, falling back to the
// embedded defaults when the file does not exist, and overlays any flag or
// ARENAD_* environment value that was set.
func loadConfig(v *viper.Viper) (config.Config, error) {
	home := v.GetString(flagHome)

	cfg, err := config.Load(home)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, err
		}
		defaults, derr := config.LoadDefaultConfig()
		if derr != nil {
			return config.Config{}, derr
		}
		cfg = *defaults
	}
	cfg.NodeHome = home

	if v.IsSet(flagLogLevel) {
		cfg.LogLevel = v.GetInt(flagLogLevel)
	}
	if v.IsSet(flagLogFormat) {
		cfg.LogFormat = v.GetString(flagLogFormat)
	}
	if s := v.GetString(flagProgramID); s != "" {
		cfg.ProgramID = s
	}
	if s := v.GetString(flagLedgerBackend); s != "" {
		cfg.LedgerBackend = config.LedgerBackend(s)
	}
	if n := v.GetInt(flagBlockInterval); n != 0 {
		cfg.BlockIntervalMs = n
	}
	if n := v.GetInt(flagPort); n != 0 {
		cfg.QueryServerPort = n
	}

	if err := config.Validate(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
