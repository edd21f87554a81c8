package keeper

import (
	"context"

	"github.com/arenaledger/arena-node/x/arena/types"
)

// InitGenesis initializes the module's state from a genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}

	for _, m := range data.Matches {
		addr, err := k.matchAddress(m.MatchID)
		if err != nil {
			return err
		}
		if err := k.Matches.Set(ctx, addr.Bytes(), m); err != nil {
			return err
		}
	}
	for _, ps := range data.PlayerStates {
		addr, err := k.directory.PlayerStateAddress(ps.MatchID, ps.Player)
		if err != nil {
			return err
		}
		if err := k.PlayerStates.Set(ctx, addr.Key.Bytes(), ps); err != nil {
			return err
		}
	}
	for _, d := range data.Derbies {
		addr, err := k.directory.DerbyAddress(d.RaceID)
		if err != nil {
			return err
		}
		if err := k.Derbies.Set(ctx, addr.Key.Bytes(), d); err != nil {
			return err
		}
	}
	for _, s := range data.Sessions {
		addr, err := k.directory.SessionAddress(s.Authority, s.Signer)
		if err != nil {
			return err
		}
		if err := k.Sessions.Set(ctx, addr.Key.Bytes(), s); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis exports the module's state to a genesis state.
func (k *Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	matches, err := k.AllMatches(ctx)
	if err != nil {
		panic(err)
	}
	playerStates, err := k.AllPlayerStates(ctx)
	if err != nil {
		panic(err)
	}
	derbies, err := k.AllDerbies(ctx)
	if err != nil {
		panic(err)
	}
	sessions, err := k.AllSessions(ctx)
	if err != nil {
		panic(err)
	}

	return &types.GenesisState{
		Matches:      matches,
		PlayerStates: playerStates,
		Derbies:      derbies,
		Sessions:     sessions,
	}
}
