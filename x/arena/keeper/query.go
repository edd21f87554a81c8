package keeper

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/arenaledger/arena-node/x/arena/types"
)

// GetMatch returns the match stored for matchID.
func (k Keeper) GetMatch(ctx context.Context, matchID uint64) (types.ArenaMatch, bool, error) {
	addr, err := k.matchAddress(matchID)
	if err != nil {
		return types.ArenaMatch{}, false, err
	}
	return lookup(ctx, k.Matches, addr)
}

// GetPlayerState returns player's input record for matchID.
func (k Keeper) GetPlayerState(ctx context.Context, matchID uint64, player solana.PublicKey) (types.PlayerState, bool, error) {
	addr, err := k.directory.PlayerStateAddress(matchID, player)
	if err != nil {
		return types.PlayerState{}, false, err
	}
	return lookup(ctx, k.PlayerStates, addr.Key)
}

// GetDerby returns the race stored for raceID.
func (k Keeper) GetDerby(ctx context.Context, raceID uint64) (types.DerbyRace, bool, error) {
	addr, err := k.directory.DerbyAddress(raceID)
	if err != nil {
		return types.DerbyRace{}, false, err
	}
	return lookup(ctx, k.Derbies, addr.Key)
}

// GetSession returns the session authority granted to signer.
func (k Keeper) GetSession(ctx context.Context, authority, signer solana.PublicKey) (types.SessionToken, bool, error) {
	addr, err := k.directory.SessionAddress(authority, signer)
	if err != nil {
		return types.SessionToken{}, false, err
	}
	return lookup(ctx, k.Sessions, addr.Key)
}

func (k Keeper) AllMatches(ctx context.Context) ([]types.ArenaMatch, error) {
	return collectValues(ctx, k.Matches)
}

func (k Keeper) AllPlayerStates(ctx context.Context) ([]types.PlayerState, error) {
	return collectValues(ctx, k.PlayerStates)
}

func (k Keeper) AllDerbies(ctx context.Context) ([]types.DerbyRace, error) {
	return collectValues(ctx, k.Derbies)
}

func (k Keeper) AllSessions(ctx context.Context) ([]types.SessionToken, error) {
	return collectValues(ctx, k.Sessions)
}
