package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arenaledger/arena-node/x/arena/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	f := SetupTest(t)
	f.activeMatch(t, 1)
	f.racingDerby(t, 2)
	_, err := f.k.CreateSession(f.ctx, f.player1, testKey(0x77), genesisTime.Unix()+100)
	require.NoError(t, err)

	exported := f.k.ExportGenesis(f.ctx)
	require.Len(t, exported.Matches, 1)
	require.Len(t, exported.PlayerStates, 2)
	require.Len(t, exported.Derbies, 1)
	require.Len(t, exported.Sessions, 1)
	require.NoError(t, exported.Validate())

	g := SetupTest(t)
	require.NoError(t, g.k.InitGenesis(g.ctx, exported))
	require.Equal(t, f.match(t, 1), g.match(t, 1))
	require.Equal(t, f.derby(t, 2), g.derby(t, 2))

	ps, found, err := g.k.GetPlayerState(g.ctx, 1, f.player2)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, f.player2, ps.Player)
}

func TestInitGenesisRejectsInvalid(t *testing.T) {
	f := SetupTest(t)
	gs := types.DefaultGenesis()
	m := types.NewArenaMatch(1, f.server, f.player1, 1)
	m.Player1HP = 9
	gs.Matches = append(gs.Matches, m)

	require.Error(t, f.k.InitGenesis(f.ctx, gs))
}
