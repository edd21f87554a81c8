package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arenaledger/arena-node/relay/ledger"
	"github.com/arenaledger/arena-node/relay/logger"
	"github.com/arenaledger/arena-node/x/arena/types"
)

// ReplayOutput is what `arenad replay` prints.
type ReplayOutput struct {
	Height  int64               `json:"height"`
	Results []ledger.Result     `json:"results"`
	State   *types.GenesisState `json:"state"`
}

func replayCmd(v *viper.Viper) *cobra.Command {
	var genesisFile string

	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Apply a JSON-lines request log to a fresh in-memory ledger",
		Long: `
Each line is a request envelope:

  {"time": 1700000000, "signer": "<base58>", "subject": "<base58>", "data": "<hex>"}

"data_b58" may replace "data" to pass instruction data in base58. Consecutive
lines sharing a time form one block. Use "-" to read from stdin.

Examples:
  arenad replay requests.jsonl
  arenad replay - < requests.jsonl
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, cfg.LogSampler)

			directory, err := types.NewDirectory(cfg.ProgramID)
			if err != nil {
				return err
			}
			l, err := ledger.New(dbm.NewMemDB(), directory, log)
			if err != nil {
				return err
			}
			defer l.Close()

			if genesisFile != "" {
				gs, err := readGenesis(genesisFile)
				if err != nil {
					return err
				}
				// genesis sits at the epoch so every logged block time follows it
				if err := l.InitChain(time.Unix(0, 0), gs); err != nil {
					return err
				}
			}

			in, closeIn, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeIn()

			results, err := replay(in, l, log)
			if err != nil {
				return err
			}

			out := ReplayOutput{
				Height:  l.Height(),
				Results: results,
				State:   l.Export(context.Background()),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&genesisFile, "genesis", "", "JSON genesis applied before the log")
	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open request log: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// replay delivers every envelope in r, sealing a block whenever the time
// changes. Rejected requests are part of the results, not errors.
func replay(r io.Reader, l *ledger.Ledger, log zerolog.Logger) ([]ledger.Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var (
		results []ledger.Result
		open    bool
		current int64
	)
	seal := func() error {
		if !open {
			return nil
		}
		open = false
		_, err := l.Commit()
		return err
	}

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var env ledger.Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			return results, fmt.Errorf("line %d: %w", lineNo, err)
		}
		req, err := env.Request()
		if err != nil {
			return results, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if !open || env.Time != current {
			if err := seal(); err != nil {
				return results, err
			}
			if err := l.BeginBlock(env.BlockTime()); err != nil {
				return results, fmt.Errorf("line %d: %w", lineNo, err)
			}
			open, current = true, env.Time
		}

		res := l.Deliver(req)
		if !res.IsOK() {
			log.Debug().Int("line", lineNo).Err(res.Err).Msg("request rejected")
		}
		results = append(results, res)
	}
	if err := scanner.Err(); err != nil {
		return results, fmt.Errorf("failed to read request log: %w", err)
	}
	return results, seal()
}
