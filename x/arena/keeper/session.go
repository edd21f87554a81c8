package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/gagliardetto/solana-go"

	"github.com/arenaledger/arena-node/x/arena/types"
)

// CreateSession lets signer act for authority on player requests until validUntil.
func (k Keeper) CreateSession(ctx context.Context, authority, signer solana.PublicKey, validUntil int64) (types.SessionToken, error) {
	now := blockTime(ctx)
	if validUntil <= now {
		return types.SessionToken{}, errorsmod.Wrapf(types.ErrInvalidSessionExpiry, "valid until %d, now %d", validUntil, now)
	}
	if signer.IsZero() || signer.Equals(authority) {
		return types.SessionToken{}, errorsmod.Wrapf(types.ErrSessionInvalid, "session signer %s", signer)
	}
	addr, err := k.directory.SessionAddress(authority, signer)
	if err != nil {
		return types.SessionToken{}, err
	}
	if err := ensureVacant(ctx, k.Sessions, addr.Key, "session"); err != nil {
		return types.SessionToken{}, err
	}

	s := types.SessionToken{Authority: authority, Signer: signer, ValidUntil: validUntil, CreatedAt: now}
	if err := k.Sessions.Set(ctx, addr.Key.Bytes(), s); err != nil {
		return s, err
	}
	k.logger.Info("session created", "authority", authority.String(), "signer", signer.String(), "valid_until", validUntil)
	ev, err := types.NewSessionEvent(types.EventTypeSessionCreated, addr.Key, s)
	return s, emit(ctx, ev, err)
}

// RevokeSession deletes the session authority granted to signer.
func (k Keeper) RevokeSession(ctx context.Context, authority, signer solana.PublicKey) (types.SessionToken, error) {
	addr, err := k.directory.SessionAddress(authority, signer)
	if err != nil {
		return types.SessionToken{}, err
	}
	s, err := load(ctx, k.Sessions, addr.Key, "session")
	if err != nil {
		return s, err
	}
	if err := closeAccount(ctx, k.Sessions, addr.Key); err != nil {
		return s, err
	}
	ev, err := types.NewSessionEvent(types.EventTypeSessionRevoked, addr.Key, s)
	return s, emit(ctx, ev, err)
}

// authorizePlayer accepts a request signed by player or by a live session
// player granted to the signer.
func (k Keeper) authorizePlayer(ctx context.Context, signer, player solana.PublicKey) error {
	if signer.Equals(player) {
		return nil
	}
	addr, err := k.directory.SessionAddress(player, signer)
	if err != nil {
		return err
	}
	s, found, err := lookup(ctx, k.Sessions, addr.Key)
	if err != nil {
		return err
	}
	if !found {
		return errorsmod.Wrapf(types.ErrSessionInvalid, "signer %s for player %s", signer, player)
	}
	if now := blockTime(ctx); !s.IsLive(now) {
		return errorsmod.Wrapf(types.ErrSessionInvalid, "session for %s expired at %d", player, s.ValidUntil)
	}
	return nil
}
