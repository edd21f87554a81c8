package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arenaledger/arena-node/relay/api"
	"github.com/arenaledger/arena-node/relay/config"
	"github.com/arenaledger/arena-node/relay/constant"
	"github.com/arenaledger/arena-node/relay/db"
	"github.com/arenaledger/arena-node/relay/indexer"
	"github.com/arenaledger/arena-node/relay/ledger"
	"github.com/arenaledger/arena-node/relay/logger"
	"github.com/arenaledger/arena-node/relay/metrics"
	"github.com/arenaledger/arena-node/x/arena/types"
)

func startCmd(v *viper.Viper) *cobra.Command {
	var genesisFile string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the ledger, block producer, outcome index and query server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.LogSampler)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runRelay(ctx, cfg, genesisFile, log)
		},
	}

	cmd.Flags().StringVar(&genesisFile, "genesis", "", "JSON genesis applied when the ledger is empty")
	return cmd
}

// openLedger opens the configured ledger and applies genesis to an empty one.
func openLedger(cfg config.Config, genesisFile string, log zerolog.Logger) (*ledger.Ledger, error) {
	directory, err := types.NewDirectory(cfg.ProgramID)
	if err != nil {
		return nil, err
	}
	kv, err := ledger.OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	l, err := ledger.New(kv, directory, log)
	if err != nil {
		return nil, err
	}

	if genesisFile != "" && l.Height() == 0 {
		gs, err := readGenesis(genesisFile)
		if err != nil {
			_ = l.Close()
			return nil, err
		}
		if err := l.InitChain(time.Now(), gs); err != nil {
			_ = l.Close()
			return nil, err
		}
		log.Info().Str("file", genesisFile).Msg("genesis applied")
	}
	return l, nil
}

func readGenesis(path string) (*types.GenesisState, error) {
	bz, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis: %w", err)
	}
	gs, err := types.UnmarshalGenesis(json.RawMessage(bz))
	if err != nil {
		return nil, fmt.Errorf("failed to parse genesis: %w", err)
	}
	return gs, nil
}

func runRelay(ctx context.Context, cfg config.Config, genesisFile string, log zerolog.Logger) error {
	l, err := openLedger(cfg, genesisFile, log)
	if err != nil {
		return err
	}
	defer l.Close()

	index, err := db.OpenFileDB(filepath.Join(cfg.NodeHome, constant.DataSubdir), cfg.DatabaseFile, true)
	if err != nil {
		return err
	}
	defer index.Close()

	ix := indexer.New(index, log)
	m := metrics.New()
	m.SetHeight(l.Height())

	producer := ledger.NewProducer(l, cfg.BlockInterval(), cfg.MaxBlockRequests, log, ix.HandleBlock, m.HandleBlock)

	server := api.NewServer(log, cfg.QueryServerPort, l, producer, ix, m.Handler())
	if err := server.Start(); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to stop query server")
		}
	}()

	go db.NewJournalCleaner(index, cfg.JournalCleanupInterval(), cfg.JournalRetentionPeriod(), log).Run(ctx)

	log.Info().
		Str("home", cfg.NodeHome).
		Str("program_id", cfg.ProgramID).
		Int64("height", l.Height()).
		Int("port", cfg.QueryServerPort).
		Msg("arenad started")

	if err := producer.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info().Int64("height", l.Height()).Msg("arenad stopped")
	return nil
}
