package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	"github.com/arenaledger/arena-node/x/arena/types"
)

type Keeper struct {
	logger        log.Logger
	schemaBuilder *collections.SchemaBuilder
	Schema        collections.Schema

	directory types.Directory

	// Records keyed by their derived 32 byte address.
	Matches      collections.Map[[]byte, types.ArenaMatch]
	PlayerStates collections.Map[[]byte, types.PlayerState]
	Derbies      collections.Map[[]byte, types.DerbyRace]
	Sessions     collections.Map[[]byte, types.SessionToken]
}

// NewKeeper creates a new Keeper instance
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	directory types.Directory,
) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:        logger,
		schemaBuilder: sb,
		directory:     directory,

		Matches:      collections.NewMap(sb, types.MatchesKey, types.MatchesName, collections.BytesKey, types.NewRecordCodec[types.ArenaMatch](types.ArenaMatchRecordName)),
		PlayerStates: collections.NewMap(sb, types.PlayerStatesKey, types.PlayerStatesName, collections.BytesKey, types.NewRecordCodec[types.PlayerState](types.PlayerStateRecordName)),
		Derbies:      collections.NewMap(sb, types.DerbiesKey, types.DerbiesName, collections.BytesKey, types.NewRecordCodec[types.DerbyRace](types.DerbyRaceRecordName)),
		Sessions:     collections.NewMap(sb, types.SessionsKey, types.SessionsName, collections.BytesKey, types.NewRecordCodec[types.SessionToken](types.SessionTokenRecordName)),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

func (k Keeper) Directory() types.Directory {
	return k.directory
}

func (k Keeper) SchemaBuilder() *collections.SchemaBuilder {
	return k.schemaBuilder
}

// blockTime is the unix time stamped into createdAt and settledAt.
func blockTime(ctx context.Context) int64 {
	return sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
}

func emit(ctx context.Context, event sdk.Event, err error) error {
	if err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(event)
	return nil
}

// load reads the record stored at addr, mapping a missing entry to ErrAccountNotFound.
func load[T any](ctx context.Context, m collections.Map[[]byte, T], addr solana.PublicKey, what string) (T, error) {
	v, err := m.Get(ctx, addr.Bytes())
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return v, errorsmod.Wrapf(types.ErrAccountNotFound, "%s %s", what, addr)
		}
		return v, err
	}
	return v, nil
}

// lookup is load without the not found error.
func lookup[T any](ctx context.Context, m collections.Map[[]byte, T], addr solana.PublicKey) (T, bool, error) {
	v, err := m.Get(ctx, addr.Bytes())
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return v, false, nil
		}
		return v, false, err
	}
	return v, true, nil
}

// ensureVacant rejects creating a record over an occupied address.
func ensureVacant[T any](ctx context.Context, m collections.Map[[]byte, T], addr solana.PublicKey, what string) error {
	has, err := m.Has(ctx, addr.Bytes())
	if err != nil {
		return err
	}
	if has {
		return errorsmod.Wrapf(types.ErrAccountInUse, "%s %s", what, addr)
	}
	return nil
}

// closeAccount deletes the record stored at addr and releases its slot.
func closeAccount[T any](ctx context.Context, m collections.Map[[]byte, T], addr solana.PublicKey) error {
	return m.Remove(ctx, addr.Bytes())
}

// collectValues returns every value of m in key order.
func collectValues[T any](ctx context.Context, m collections.Map[[]byte, T]) ([]T, error) {
	iter, err := m.Iterate(ctx, nil)
	if err != nil {
		return nil, err
	}
	return iter.Values()
}
