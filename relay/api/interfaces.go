package api

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=api

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/arenaledger/arena-node/relay/indexer"
	"github.com/arenaledger/arena-node/relay/ledger"
	"github.com/arenaledger/arena-node/relay/store"
	"github.com/arenaledger/arena-node/x/arena/types"
)

// LedgerReader defines the committed state lookups needed by the API server
type LedgerReader interface {
	Height() int64
	Match(ctx context.Context, matchID uint64) (types.ArenaMatch, bool, error)
	PlayerState(ctx context.Context, matchID uint64, player solana.PublicKey) (types.PlayerState, bool, error)
	Derby(ctx context.Context, raceID uint64) (types.DerbyRace, bool, error)
}

// RequestSubmitter queues a request into the next block and waits for it.
type RequestSubmitter interface {
	Submit(ctx context.Context, req types.Request) (ledger.Result, error)
}

// OutcomeIndex lists indexed outcomes.
type OutcomeIndex interface {
	MatchOutcomes(ctx context.Context, f indexer.Filter) ([]store.MatchOutcome, error)
	RaceOutcomes(ctx context.Context, f indexer.Filter) ([]store.RaceOutcome, error)
}
