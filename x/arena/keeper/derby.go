package keeper

import (
	"context"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/arenaledger/arena-node/x/arena/types"
)

func (k Keeper) loadDerby(ctx context.Context, raceID uint64) (solana.PublicKey, types.DerbyRace, error) {
	addr, err := k.directory.DerbyAddress(raceID)
	if err != nil {
		return solana.PublicKey{}, types.DerbyRace{}, err
	}
	d, err := load(ctx, k.Derbies, addr.Key, "race")
	return addr.Key, d, err
}

func (k Keeper) loadServerDerby(ctx context.Context, signer solana.PublicKey, raceID uint64) (solana.PublicKey, types.DerbyRace, error) {
	addr, d, err := k.loadDerby(ctx, raceID)
	if err != nil {
		return addr, d, err
	}
	if !signer.Equals(d.GameServer) {
		return addr, d, errorsmod.Wrapf(types.ErrDerbyUnauthorizedServer, "race %d: signer %s", raceID, signer)
	}
	return addr, d, nil
}

func (k Keeper) storeDerby(ctx context.Context, addr solana.PublicKey, d types.DerbyRace, eventType string) error {
	if err := k.Derbies.Set(ctx, addr.Bytes(), d); err != nil {
		return err
	}
	ev, err := types.NewDerbyEvent(eventType, addr, d)
	return emit(ctx, ev, err)
}

// CreateDerby opens a race for player refereed by gameServer. The seed is
// stored as given.
func (k Keeper) CreateDerby(ctx context.Context, player, gameServer solana.PublicKey, raceID uint64, seed types.Seed) (types.DerbyRace, error) {
	if gameServer.IsZero() {
		return types.DerbyRace{}, errorsmod.Wrap(types.ErrDerbyUnauthorizedServer, "game server must be set")
	}
	addr, err := k.directory.DerbyAddress(raceID)
	if err != nil {
		return types.DerbyRace{}, err
	}
	if err := ensureVacant(ctx, k.Derbies, addr.Key, "race"); err != nil {
		return types.DerbyRace{}, err
	}

	d := types.NewDerbyRace(raceID, gameServer, player, seed, blockTime(ctx))
	if err := k.storeDerby(ctx, addr.Key, d, types.EventTypeDerbyCreated); err != nil {
		return types.DerbyRace{}, err
	}
	k.logger.Info("race created", "race_id", raceID, "player", player.String(), "game_server", gameServer.String())
	return d, nil
}

func (k Keeper) StartDerby(ctx context.Context, signer solana.PublicKey, raceID uint64) (types.DerbyRace, error) {
	addr, d, err := k.loadServerDerby(ctx, signer, raceID)
	if err != nil {
		return d, err
	}
	if d.Status != types.DerbyStatusCreated {
		return d, errorsmod.Wrapf(types.ErrInvalidDerbyState, "race %d is %s", raceID, d.Status)
	}

	d.Status = types.DerbyStatusRacing
	d.CurrentTick = 0
	d.CurrentLap = 0
	d.CheckpointsPassed = 0
	if err := k.storeDerby(ctx, addr, d, types.EventTypeDerbyStarted); err != nil {
		return d, err
	}
	k.logger.Debug("race started", "race_id", raceID)
	return d, nil
}

// SubmitDerbyInput moves the race clock forward to the input tick. The clock
// never runs backwards.
func (k Keeper) SubmitDerbyInput(ctx context.Context, signer, player solana.PublicKey, in types.SubmitDerbyInput) (types.DerbyRace, error) {
	if err := k.authorizePlayer(ctx, signer, player); err != nil {
		return types.DerbyRace{}, err
	}
	addr, d, err := k.loadDerby(ctx, in.RaceID)
	if err != nil {
		return d, err
	}
	if !player.Equals(d.Player) {
		return d, errorsmod.Wrapf(types.ErrAccountMismatch, "race %d belongs to %s", in.RaceID, d.Player)
	}
	if d.Status != types.DerbyStatusRacing {
		return d, errorsmod.Wrapf(types.ErrRaceNotActive, "race %d is %s", in.RaceID, d.Status)
	}
	if in.Tick > types.DerbyMaxTicks {
		return d, errorsmod.Wrapf(types.ErrRaceTimedOut, "tick %d exceeds %d", in.Tick, types.DerbyMaxTicks)
	}

	if in.Tick > d.CurrentTick {
		d.CurrentTick = in.Tick
	}
	if err := k.storeDerby(ctx, addr, d, types.EventTypeDerbyInput); err != nil {
		return d, err
	}
	return d, nil
}

// DerbyServerUpdate applies one server-validated race action.
func (k Keeper) DerbyServerUpdate(ctx context.Context, signer solana.PublicKey, raceID uint64, action types.DerbyAction) (types.DerbyRace, error) {
	addr, d, err := k.loadServerDerby(ctx, signer, raceID)
	if err != nil {
		return d, err
	}
	if d.Status != types.DerbyStatusRacing {
		return d, errorsmod.Wrapf(types.ErrRaceNotActive, "race %d is %s", raceID, d.Status)
	}

	next, err := applyDerbyAction(d, action)
	if err != nil {
		return d, errorsmod.Wrapf(err, "race %d", raceID)
	}

	eventType := types.EventTypeDerbyUpdated
	if _, ok := action.(types.FinishRace); ok {
		k.settleDerby(ctx, &next)
		eventType = types.EventTypeDerbyFinished
	}
	if err := k.storeDerby(ctx, addr, next, eventType); err != nil {
		return d, err
	}
	k.logger.Debug("race updated", "race_id", raceID, "action", action.Tag().String(), "lap", next.CurrentLap, "tick", next.CurrentTick)
	return next, nil
}

// applyDerbyAction returns d with action applied, or the rejection.
func applyDerbyAction(d types.DerbyRace, action types.DerbyAction) (types.DerbyRace, error) {
	switch a := action.(type) {
	case types.RecordCollision:
		d.Collisions = saturatingAdd16(d.Collisions, 1)

	case types.CollectGold:
		if a.ItemIndex >= types.DerbyMaxGold {
			return d, errorsmod.Wrapf(types.ErrInvalidItemIndex, "gold %d", a.ItemIndex)
		}
		if d.GoldBitmask.Has(a.ItemIndex) {
			return d, errorsmod.Wrapf(types.ErrItemAlreadyCollected, "gold %d", a.ItemIndex)
		}
		d.GoldBitmask = d.GoldBitmask.With(a.ItemIndex)
		d.GoldCollected = saturatingAdd8(d.GoldCollected, 1)

	case types.CollectBoost:
		if a.ItemIndex >= types.DerbyMaxBoosts {
			return d, errorsmod.Wrapf(types.ErrInvalidItemIndex, "boost %d", a.ItemIndex)
		}
		if d.BoostBitmask.Has(a.ItemIndex) {
			return d, errorsmod.Wrapf(types.ErrItemAlreadyCollected, "boost %d", a.ItemIndex)
		}
		d.BoostBitmask = d.BoostBitmask.With(a.ItemIndex)
		d.BoostsCollected = saturatingAdd8(d.BoostsCollected, 1)
		d.BoostEndTick = saturatingAdd32(d.CurrentTick, types.DerbyBoostDurationTicks)

	case types.PassCheckpoint:
		if a.CheckpointID >= types.DerbyCheckpointCount {
			return d, errorsmod.Wrapf(types.ErrInvalidCheckpoint, "checkpoint %d", a.CheckpointID)
		}
		d.CheckpointsPassed = d.CheckpointsPassed.With(a.CheckpointID)

	case types.CompleteLap:
		if d.CurrentLap >= types.DerbyMaxLaps {
			return d, errorsmod.Wrapf(types.ErrInvalidDerbyState, "all %d laps already complete", types.DerbyMaxLaps)
		}
		if !d.CheckpointsPassed.Contains(types.Bits8(types.AllCheckpoints)) {
			return d, errorsmod.Wrapf(types.ErrMissingCheckpoints, "passed %04b", uint8(d.CheckpointsPassed))
		}
		d.CurrentLap = saturatingAdd8(d.CurrentLap, 1)
		d.CheckpointsPassed = 0

	case types.FinishRace:
		if d.CurrentLap < types.DerbyMaxLaps {
			return d, errorsmod.Wrapf(types.ErrLapsNotComplete, "lap %d of %d", d.CurrentLap, types.DerbyMaxLaps)
		}

	default:
		return d, errorsmod.Wrap(types.ErrInvalidInstruction, fmt.Sprintf("unknown derby action %T", action))
	}
	return d, nil
}
