package keeper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arenaledger/arena-node/x/arena/types"
)

func TestSessionAuthorizesPlayerRequests(t *testing.T) {
	f := SetupTest(t)
	relayer := testKey(0x55)

	_, err := f.k.CreateSession(f.ctx, f.player2, relayer, genesisTime.Unix())
	require.ErrorIs(t, err, types.ErrInvalidSessionExpiry)

	s, err := f.k.CreateSession(f.ctx, f.player2, relayer, genesisTime.Add(time.Hour).Unix())
	require.NoError(t, err)
	require.True(t, s.IsLive(genesisTime.Unix()))

	_, err = f.k.CreateSession(f.ctx, f.player2, relayer, genesisTime.Add(2*time.Hour).Unix())
	require.ErrorIs(t, err, types.ErrAccountInUse)

	_, err = f.k.CreateMatch(f.ctx, f.player1, f.server, 1)
	require.NoError(t, err)
	_, err = f.k.CreatePlayerState(f.ctx, f.player2, 1)
	require.NoError(t, err)

	// the relayer joins and plays for player2
	m, err := f.k.JoinMatch(f.ctx, relayer, f.player2, 1)
	require.NoError(t, err)
	require.Equal(t, f.player2, m.Player2)

	_, err = f.k.StartRound(f.ctx, f.server, 1)
	require.NoError(t, err)
	ps, err := f.k.SubmitInput(f.ctx, relayer, f.player2, types.SubmitInput{MatchID: 1, Tick: 1})
	require.NoError(t, err)
	require.Equal(t, uint64(1), ps.InputCount)

	// a session never authorizes server requests
	_, err = f.k.ApplyDamage(f.ctx, relayer, 1, types.SlotPlayer1)
	require.ErrorIs(t, err, types.ErrUnauthorizedServer)

	// expired
	_, err = f.k.SubmitInput(f.at(time.Hour), relayer, f.player2, types.SubmitInput{MatchID: 1, Tick: 2})
	require.ErrorIs(t, err, types.ErrSessionInvalid)

	_, err = f.k.RevokeSession(f.ctx, f.player2, relayer)
	require.NoError(t, err)
	_, err = f.k.SubmitInput(f.ctx, relayer, f.player2, types.SubmitInput{MatchID: 1, Tick: 2})
	require.ErrorIs(t, err, types.ErrSessionInvalid)

	_, err = f.k.RevokeSession(f.ctx, f.player2, relayer)
	require.ErrorIs(t, err, types.ErrAccountNotFound)
}

func TestCreateSessionRejectsSelf(t *testing.T) {
	f := SetupTest(t)
	_, err := f.k.CreateSession(f.ctx, f.player1, f.player1, genesisTime.Add(time.Hour).Unix())
	require.ErrorIs(t, err, types.ErrSessionInvalid)
}
