package keeper

import (
	"context"
	"math"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/arenaledger/arena-node/x/arena/types"
)

// settleMatch marks m complete with winner seated at slot.
func (k Keeper) settleMatch(ctx context.Context, m *types.ArenaMatch, winner types.Slot) {
	m.Status = types.MatchStatusComplete
	m.Winner = m.PlayerAt(winner)
	m.SettledAt = blockTime(ctx)
	k.logger.Info("match settled",
		"match_id", m.MatchID,
		"winner", m.Winner.String(),
		"rounds", m.Player1RoundsWon, "vs", m.Player2RoundsWon,
	)
}

// settleDerby marks d finished at its current tick.
func (k Keeper) settleDerby(ctx context.Context, d *types.DerbyRace) {
	d.Status = types.DerbyStatusFinished
	d.FinishTick = d.CurrentTick
	d.SettledAt = blockTime(ctx)
	k.logger.Info("race finished",
		"race_id", d.RaceID,
		"player", d.Player.String(),
		"finish_tick", d.FinishTick,
		"gold", d.GoldCollected,
		"collisions", d.Collisions,
	)
}

// CloseMatch deletes a completed match. Only its game server may close it.
func (k Keeper) CloseMatch(ctx context.Context, signer solana.PublicKey, matchID uint64) (types.ArenaMatch, error) {
	addr, m, err := k.loadServerMatch(ctx, signer, matchID)
	if err != nil {
		return m, err
	}
	if !m.IsSettled() {
		return m, errorsmod.Wrapf(types.ErrMatchNotComplete, "match %d is %s", matchID, m.Status)
	}
	if err := closeAccount(ctx, k.Matches, addr); err != nil {
		return m, err
	}
	ev, err := types.NewMatchEvent(types.EventTypeMatchClosed, addr, m)
	return m, emit(ctx, ev, err)
}

// ClosePlayerState deletes player's input record once the match completed.
// Authorization is derived from the match record.
func (k Keeper) ClosePlayerState(ctx context.Context, signer, player solana.PublicKey, matchID uint64) (types.PlayerState, error) {
	_, m, err := k.loadServerMatch(ctx, signer, matchID)
	if err != nil {
		return types.PlayerState{}, err
	}
	psAddr, err := k.directory.PlayerStateAddress(matchID, player)
	if err != nil {
		return types.PlayerState{}, err
	}
	ps, err := load(ctx, k.PlayerStates, psAddr.Key, "player state")
	if err != nil {
		return ps, err
	}
	if ps.MatchID != matchID || !ps.Player.Equals(player) {
		return ps, errorsmod.Wrapf(types.ErrAccountMismatch, "player state %s belongs to %d/%s", psAddr.Key, ps.MatchID, ps.Player)
	}
	if !m.IsSettled() {
		return ps, errorsmod.Wrapf(types.ErrMatchNotComplete, "match %d is %s", matchID, m.Status)
	}
	if err := closeAccount(ctx, k.PlayerStates, psAddr.Key); err != nil {
		return ps, err
	}
	ev, err := types.NewPlayerStateEvent(types.EventTypePlayerStateClosed, psAddr.Key, ps)
	return ps, emit(ctx, ev, err)
}

// CloseDerby deletes a finished race. Only its game server may close it.
func (k Keeper) CloseDerby(ctx context.Context, signer solana.PublicKey, raceID uint64) (types.DerbyRace, error) {
	addr, d, err := k.loadServerDerby(ctx, signer, raceID)
	if err != nil {
		return d, err
	}
	if d.Status != types.DerbyStatusFinished {
		return d, errorsmod.Wrapf(types.ErrRaceNotFinished, "race %d is %s", raceID, d.Status)
	}
	if err := closeAccount(ctx, k.Derbies, addr); err != nil {
		return d, err
	}
	ev, err := types.NewDerbyEvent(types.EventTypeDerbyClosed, addr, d)
	return d, emit(ctx, ev, err)
}

func saturatingAdd8(a, b uint8) uint8 {
	if a > math.MaxUint8-b {
		return math.MaxUint8
	}
	return a + b
}

func saturatingSub8(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func saturatingAdd16(a, b uint16) uint16 {
	if a > math.MaxUint16-b {
		return math.MaxUint16
	}
	return a + b
}

func saturatingAdd32(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

func saturatingSub32(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}

func saturatingAdd64(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
