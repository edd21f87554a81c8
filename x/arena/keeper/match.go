package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/arenaledger/arena-node/x/arena/types"
)

func (k Keeper) matchAddress(matchID uint64) (solana.PublicKey, error) {
	addr, err := k.directory.MatchAddress(matchID)
	return addr.Key, err
}

func (k Keeper) loadMatch(ctx context.Context, matchID uint64) (solana.PublicKey, types.ArenaMatch, error) {
	addr, err := k.matchAddress(matchID)
	if err != nil {
		return addr, types.ArenaMatch{}, err
	}
	m, err := load(ctx, k.Matches, addr, "match")
	return addr, m, err
}

// loadServerMatch loads a match and checks the signer is its game server.
func (k Keeper) loadServerMatch(ctx context.Context, signer solana.PublicKey, matchID uint64) (solana.PublicKey, types.ArenaMatch, error) {
	addr, m, err := k.loadMatch(ctx, matchID)
	if err != nil {
		return addr, m, err
	}
	if !signer.Equals(m.GameServer) {
		return addr, m, errorsmod.Wrapf(types.ErrUnauthorizedServer, "match %d: signer %s", matchID, signer)
	}
	return addr, m, nil
}

func (k Keeper) storeMatch(ctx context.Context, addr solana.PublicKey, m types.ArenaMatch, eventType string) error {
	if err := k.Matches.Set(ctx, addr.Bytes(), m); err != nil {
		return err
	}
	ev, err := types.NewMatchEvent(eventType, addr, m)
	return emit(ctx, ev, err)
}

// CreateMatch opens a match for player1 refereed by gameServer.
func (k Keeper) CreateMatch(ctx context.Context, player1, gameServer solana.PublicKey, matchID uint64) (types.ArenaMatch, error) {
	if gameServer.IsZero() {
		return types.ArenaMatch{}, errorsmod.Wrap(types.ErrUnauthorizedServer, "game server must be set")
	}
	addr, err := k.matchAddress(matchID)
	if err != nil {
		return types.ArenaMatch{}, err
	}
	if err := ensureVacant(ctx, k.Matches, addr, "match"); err != nil {
		return types.ArenaMatch{}, err
	}

	m := types.NewArenaMatch(matchID, gameServer, player1, blockTime(ctx))
	if err := k.storeMatch(ctx, addr, m, types.EventTypeMatchCreated); err != nil {
		return types.ArenaMatch{}, err
	}
	k.logger.Info("match created", "match_id", matchID, "player1", player1.String(), "game_server", gameServer.String())
	return m, nil
}

// CreatePlayerState opens the input record of player for a match. The match
// itself need not exist yet.
func (k Keeper) CreatePlayerState(ctx context.Context, player solana.PublicKey, matchID uint64) (types.PlayerState, error) {
	addr, err := k.directory.PlayerStateAddress(matchID, player)
	if err != nil {
		return types.PlayerState{}, err
	}
	if err := ensureVacant(ctx, k.PlayerStates, addr.Key, "player state"); err != nil {
		return types.PlayerState{}, err
	}

	ps := types.NewPlayerState(matchID, player)
	if err := k.PlayerStates.Set(ctx, addr.Key.Bytes(), ps); err != nil {
		return types.PlayerState{}, err
	}
	ev, err := types.NewPlayerStateEvent(types.EventTypePlayerStateCreated, addr.Key, ps)
	return ps, emit(ctx, ev, err)
}

// JoinMatch seats player2 and moves the match to its countdown.
func (k Keeper) JoinMatch(ctx context.Context, signer, player2 solana.PublicKey, matchID uint64) (types.ArenaMatch, error) {
	if err := k.authorizePlayer(ctx, signer, player2); err != nil {
		return types.ArenaMatch{}, err
	}
	addr, m, err := k.loadMatch(ctx, matchID)
	if err != nil {
		return m, err
	}
	if m.Status != types.MatchStatusWaitingForPlayer {
		return m, errorsmod.Wrapf(types.ErrMatchNotJoinable, "match %d is %s", matchID, m.Status)
	}
	if player2.Equals(m.Player1) {
		return m, errorsmod.Wrapf(types.ErrCannotJoinOwnMatch, "match %d", matchID)
	}

	m.Player2 = player2
	m.Status = types.MatchStatusCountdown
	m.CurrentRound = 1
	m.CurrentTick = 0
	m.RoundStartTick = 0
	m.Player1HP = types.HPPerRound
	m.Player2HP = types.HPPerRound
	if err := k.storeMatch(ctx, addr, m, types.EventTypeMatchJoined); err != nil {
		return m, err
	}
	k.logger.Info("player joined match", "match_id", matchID, "player2", player2.String())
	return m, nil
}

// StartRound begins the current round with both sides at full HP.
func (k Keeper) StartRound(ctx context.Context, signer solana.PublicKey, matchID uint64) (types.ArenaMatch, error) {
	addr, m, err := k.loadServerMatch(ctx, signer, matchID)
	if err != nil {
		return m, err
	}
	if !m.Status.CanTransitionTo(types.MatchStatusActive) {
		return m, errorsmod.Wrapf(types.ErrInvalidMatchState, "match %d: cannot start round from %s", matchID, m.Status)
	}

	m.Status = types.MatchStatusActive
	m.RoundStartTick = m.CurrentTick
	m.Player1HP = types.HPPerRound
	m.Player2HP = types.HPPerRound
	m.LastP1DamageTick = 0
	m.LastP2DamageTick = 0
	if err := k.storeMatch(ctx, addr, m, types.EventTypeRoundStarted); err != nil {
		return m, err
	}
	k.logger.Debug("round started", "match_id", matchID, "round", m.CurrentRound, "tick", m.CurrentTick)
	return m, nil
}

// SubmitInput stores player's input for tick and advances the match clock.
func (k Keeper) SubmitInput(ctx context.Context, signer, player solana.PublicKey, in types.SubmitInput) (types.PlayerState, error) {
	if err := k.authorizePlayer(ctx, signer, player); err != nil {
		return types.PlayerState{}, err
	}
	addr, m, err := k.loadMatch(ctx, in.MatchID)
	if err != nil {
		return types.PlayerState{}, err
	}
	psAddr, err := k.directory.PlayerStateAddress(in.MatchID, player)
	if err != nil {
		return types.PlayerState{}, err
	}
	ps, err := load(ctx, k.PlayerStates, psAddr.Key, "player state")
	if err != nil {
		return ps, err
	}
	if m.Status != types.MatchStatusActive {
		return ps, errorsmod.Wrapf(types.ErrMatchNotActive, "match %d is %s", in.MatchID, m.Status)
	}
	if in.Tick <= ps.LastTick {
		return ps, errorsmod.Wrapf(types.ErrStaleInput, "tick %d, last accepted %d", in.Tick, ps.LastTick)
	}

	ps.DX = in.DX
	ps.DY = in.DY
	ps.Attacking = in.Attacking
	ps.LastTick = in.Tick
	ps.InputCount = saturatingAdd64(ps.InputCount, 1)
	if in.Tick > m.CurrentTick {
		m.CurrentTick = in.Tick
	}

	if err := k.PlayerStates.Set(ctx, psAddr.Key.Bytes(), ps); err != nil {
		return ps, err
	}
	if err := k.Matches.Set(ctx, addr.Bytes(), m); err != nil {
		return ps, err
	}
	if saturatingSub32(m.CurrentTick, m.RoundStartTick) >= types.RoundTicks {
		k.logger.Info("round timed out", "match_id", in.MatchID, "round", m.CurrentRound, "tick", m.CurrentTick)
	}
	ev, err := types.NewPlayerStateEvent(types.EventTypeInputSubmitted, psAddr.Key, ps)
	return ps, emit(ctx, ev, err)
}

// ApplyDamage takes one hit point from the side at target.
func (k Keeper) ApplyDamage(ctx context.Context, signer solana.PublicKey, matchID uint64, target types.Slot) (types.ArenaMatch, error) {
	addr, m, err := k.loadServerMatch(ctx, signer, matchID)
	if err != nil {
		return m, err
	}
	if m.Status != types.MatchStatusActive {
		return m, errorsmod.Wrapf(types.ErrMatchNotActive, "match %d is %s", matchID, m.Status)
	}
	if !target.IsValid() {
		return m, errorsmod.Wrapf(types.ErrInvalidTargetSlot, "slot %d", target)
	}

	// a side at full HP has not been hit this round, so no cooldown is running
	last := m.LastDamageTick(target)
	if m.HP(target) < types.HPPerRound && saturatingSub32(m.CurrentTick, last) < types.DamageCooldownTicks {
		return m, errorsmod.Wrapf(types.ErrDamageCooldown, "slot %d hit at tick %d, now %d", target, last, m.CurrentTick)
	}

	hp := saturatingSub8(m.HP(target), types.MaxDamagePerHit)
	if target == types.SlotPlayer1 {
		m.Player1HP = hp
		m.LastP1DamageTick = m.CurrentTick
	} else {
		m.Player2HP = hp
		m.LastP2DamageTick = m.CurrentTick
	}
	if err := k.storeMatch(ctx, addr, m, types.EventTypeDamageApplied); err != nil {
		return m, err
	}
	k.logger.Debug("damage applied", "match_id", matchID, "slot", target, "hp", hp, "tick", m.CurrentTick)
	return m, nil
}

// EndRound awards the round to the side with more HP left.
func (k Keeper) EndRound(ctx context.Context, signer solana.PublicKey, matchID uint64) (types.ArenaMatch, error) {
	addr, m, err := k.loadServerMatch(ctx, signer, matchID)
	if err != nil {
		return m, err
	}
	if m.Status != types.MatchStatusActive {
		return m, errorsmod.Wrapf(types.ErrMatchNotActive, "match %d is %s", matchID, m.Status)
	}

	var winner types.Slot
	switch {
	case m.Player1HP > m.Player2HP:
		winner = types.SlotPlayer1
		m.Player1RoundsWon++
	case m.Player2HP > m.Player1HP:
		winner = types.SlotPlayer2
		m.Player2RoundsWon++
	default:
		return m, errorsmod.Wrapf(types.ErrRoundUndecided, "match %d round %d: both sides at %d hp", matchID, m.CurrentRound, m.Player1HP)
	}

	if m.Player1RoundsWon == types.RoundsToWin || m.Player2RoundsWon == types.RoundsToWin {
		k.settleMatch(ctx, &m, winner)
		if err := k.storeMatch(ctx, addr, m, types.EventTypeMatchSettled); err != nil {
			return m, err
		}
		return m, nil
	}

	m.Status = types.MatchStatusRoundEnd
	m.CurrentRound = saturatingAdd8(m.CurrentRound, 1)
	if err := k.storeMatch(ctx, addr, m, types.EventTypeRoundEnded); err != nil {
		return m, err
	}
	k.logger.Debug("round ended", "match_id", matchID, "winner_slot", winner, "next_round", m.CurrentRound)
	return m, nil
}

// Forfeit settles an active match in favour of the side that did not forfeit.
func (k Keeper) Forfeit(ctx context.Context, signer solana.PublicKey, matchID uint64, forfeiter types.Slot) (types.ArenaMatch, error) {
	addr, m, err := k.loadServerMatch(ctx, signer, matchID)
	if err != nil {
		return m, err
	}
	if m.Status != types.MatchStatusActive {
		return m, errorsmod.Wrapf(types.ErrInvalidMatchState, "match %d: cannot forfeit from %s", matchID, m.Status)
	}
	if !forfeiter.IsValid() {
		return m, errorsmod.Wrapf(types.ErrInvalidTargetSlot, "slot %d", forfeiter)
	}

	k.settleMatch(ctx, &m, forfeiter.Opponent())
	if err := k.storeMatch(ctx, addr, m, types.EventTypeMatchSettled); err != nil {
		return m, err
	}
	return m, nil
}

// CancelMatch deletes a match nobody joined. Only player1 may cancel.
func (k Keeper) CancelMatch(ctx context.Context, signer solana.PublicKey, matchID uint64) (types.ArenaMatch, error) {
	addr, m, err := k.loadMatch(ctx, matchID)
	if err != nil {
		return m, err
	}
	if !signer.Equals(m.Player1) {
		return m, errorsmod.Wrapf(types.ErrUnauthorizedPlayer, "match %d: signer %s is not player1", matchID, signer)
	}
	if m.Status != types.MatchStatusWaitingForPlayer {
		return m, errorsmod.Wrapf(types.ErrMatchAlreadyStarted, "match %d is %s", matchID, m.Status)
	}
	if err := closeAccount(ctx, k.Matches, addr); err != nil {
		return m, err
	}
	k.logger.Info("match cancelled", "match_id", matchID)
	ev, err := types.NewMatchEvent(types.EventTypeMatchCancelled, addr, m)
	return m, emit(ctx, ev, err)
}
