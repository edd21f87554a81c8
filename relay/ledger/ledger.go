package ledger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/arenaledger/arena-node/relay/config"
	"github.com/arenaledger/arena-node/relay/constant"
	"github.com/arenaledger/arena-node/x/arena/keeper"
	"github.com/arenaledger/arena-node/x/arena/types"
)

var (
	ErrBlockOpen    = errors.New("a block is already open")
	ErrNoBlockOpen  = errors.New("no block is open")
	ErrBlockTooOld  = errors.New("block time must not go backwards")
	ErrAlreadyInit  = errors.New("ledger already has committed state")
	ErrLedgerClosed = errors.New("ledger is closed")
)

// Result is the outcome of delivering one request.
type Result struct {
	Height      int64         `json:"height"`
	Instruction string        `json:"instruction,omitempty"`
	Signer      string        `json:"signer"`
	Subject     string        `json:"subject,omitempty"`
	Code        uint32        `json:"code"`
	Codespace   string        `json:"codespace,omitempty"`
	Log         string        `json:"log,omitempty"`
	Events      []abci.Event  `json:"events,omitempty"`
	Err         error         `json:"-"`
	Duration    time.Duration `json:"-"`
}

// IsOK reports whether the request was applied.
func (r Result) IsOK() bool {
	return r.Err == nil
}

// Ledger hosts the arena keeper on a commit multistore. Every request is
// applied by a single writer, in the order Deliver is called.
type Ledger struct {
	mu sync.Mutex

	db     dbm.DB
	cms    storetypes.CommitMultiStore
	keeper keeper.Keeper
	logger zerolog.Logger

	height   int64
	lastTime time.Time
	block    storetypes.CacheMultiStore
	blockCtx sdk.Context
	closed   bool
}

// OpenDB opens the key-value store selected by cfg.
func OpenDB(cfg config.Config) (dbm.DB, error) {
	switch cfg.LedgerBackend {
	case config.LedgerBackendGoLevelDB:
		dir := filepath.Join(cfg.NodeHome, constant.DataSubdir)
		db, err := dbm.NewDB("ledger", dbm.GoLevelDBBackend, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open ledger db in %s: %w", dir, err)
		}
		return db, nil
	case config.LedgerBackendMemDB, "":
		return dbm.NewMemDB(), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}

// New mounts the arena store on db and loads its latest committed version.
func New(db dbm.DB, directory types.Directory, logger zerolog.Logger) (*Ledger, error) {
	logger = logger.With().Str("component", "ledger").Logger()
	sdkLogger := log.NewCustomLogger(logger)

	key := storetypes.NewKVStoreKey(types.StoreKey)
	cms := store.NewCommitMultiStore(db, sdkLogger, metrics.NewNoOpMetrics())
	cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}

	l := &Ledger{
		db:     db,
		cms:    cms,
		keeper: keeper.NewKeeper(runtime.NewKVStoreService(key), sdkLogger, directory),
		logger: logger,
		height: cms.LastCommitID().Version,
	}
	logger.Info().Int64("height", l.height).Msg("ledger loaded")
	return l, nil
}

// Height returns the last committed height.
func (l *Ledger) Height() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// Keeper exposes the hosted module keeper.
func (l *Ledger) Keeper() keeper.Keeper {
	return l.keeper
}

// InitChain writes genesis records as the first committed height.
func (l *Ledger) InitChain(t time.Time, gs *types.GenesisState) error {
	if err := l.BeginBlock(t); err != nil {
		return err
	}

	l.mu.Lock()
	if l.height != 0 {
		l.discardLocked()
		l.mu.Unlock()
		return ErrAlreadyInit
	}
	err := l.keeper.InitGenesis(l.blockCtx, gs)
	if err != nil {
		l.discardLocked()
	}
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to init genesis: %w", err)
	}

	_, err = l.Commit()
	return err
}

// BeginBlock opens the next block at time t. Block times never go backwards.
func (l *Ledger) BeginBlock(t time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLedgerClosed
	}
	if l.block != nil {
		return ErrBlockOpen
	}
	if t.Before(l.lastTime) {
		return fmt.Errorf("%w: %s before %s", ErrBlockTooOld, t, l.lastTime)
	}

	l.block = l.cms.CacheMultiStore()
	header := cmtproto.Header{ChainID: types.ModuleName, Height: l.height + 1, Time: t.UTC()}
	l.blockCtx = sdk.NewContext(l.block, header, false, log.NewCustomLogger(l.logger))
	l.lastTime = t
	return nil
}

// Deliver applies req inside the open block. A rejected request leaves the
// block untouched and is reported through the result.
func (l *Ledger) Deliver(req types.Request) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := Result{
		Height:      l.height + 1,
		Signer:      req.Signer.String(),
		Instruction: types.InstructionName(req.Data),
	}
	if !req.Subject.IsZero() {
		res.Subject = req.Subject.String()
	}
	if l.block == nil {
		res.Err = ErrNoBlockOpen
		res.Codespace, res.Code, res.Log = errorsmod.ABCIInfo(res.Err, false)
		return res
	}

	start := time.Now()
	ctx := l.blockCtx.WithEventManager(sdk.NewEventManager())
	ix, err := l.keeper.Execute(ctx, req)
	res.Duration = time.Since(start)
	if ix != nil {
		res.Instruction = ix.Name()
	}
	if err != nil {
		res.Err = err
		res.Codespace, res.Code, res.Log = errorsmod.ABCIInfo(err, false)
		l.logger.Debug().
			Int64("height", res.Height).
			Str("instruction", res.Instruction).
			Str("signer", res.Signer).
			Err(err).
			Msg("request rejected")
		return res
	}

	res.Events = ctx.EventManager().ABCIEvents()
	l.logger.Debug().
		Int64("height", res.Height).
		Str("instruction", res.Instruction).
		Int("events", len(res.Events)).
		Msg("request applied")
	return res
}

// Commit writes the open block and returns the new height.
func (l *Ledger) Commit() (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.block == nil {
		return l.height, ErrNoBlockOpen
	}
	l.block.Write()
	l.block = nil
	id := l.cms.Commit()
	l.height = id.Version

	l.logger.Debug().
		Int64("height", l.height).
		Str("hash", fmt.Sprintf("%X", id.Hash)).
		Msg("block committed")
	return l.height, nil
}

// Discard drops the open block without committing it.
func (l *Ledger) Discard() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.discardLocked()
}

func (l *Ledger) discardLocked() {
	l.block = nil
	l.blockCtx = sdk.Context{}
}

// Close releases the underlying database.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.discardLocked()
	return l.db.Close()
}

// queryContext reads the last committed state.
func (l *Ledger) queryContext() sdk.Context {
	header := cmtproto.Header{ChainID: types.ModuleName, Height: l.height, Time: l.lastTime.UTC()}
	return sdk.NewContext(l.cms.CacheMultiStore(), header, false, log.NewNopLogger())
}

func (l *Ledger) Match(_ context.Context, matchID uint64) (types.ArenaMatch, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keeper.GetMatch(l.queryContext(), matchID)
}

func (l *Ledger) PlayerState(_ context.Context, matchID uint64, player solana.PublicKey) (types.PlayerState, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keeper.GetPlayerState(l.queryContext(), matchID, player)
}

func (l *Ledger) Derby(_ context.Context, raceID uint64) (types.DerbyRace, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keeper.GetDerby(l.queryContext(), raceID)
}

func (l *Ledger) Session(_ context.Context, authority, signer solana.PublicKey) (types.SessionToken, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keeper.GetSession(l.queryContext(), authority, signer)
}

// Export dumps every committed record in genesis form.
func (l *Ledger) Export(_ context.Context) *types.GenesisState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keeper.ExportGenesis(l.queryContext())
}
