package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/arenaledger/arena-node/x/arena/types"
)

func (f *testFixture) execute(t *testing.T, signer, subject solana.PublicKey, ix types.Instruction) (sdk.Context, error) {
	t.Helper()
	req, err := types.NewRequest(signer, subject, ix)
	require.NoError(t, err)
	ctx := f.ctx.WithEventManager(sdk.NewEventManager())
	_, err = f.k.Execute(ctx, req)
	return ctx, err
}

func TestExecuteDispatchesRequests(t *testing.T) {
	f := SetupTest(t)
	zero := solana.PublicKey{}

	steps := []struct {
		signer, subject solana.PublicKey
		ix              types.Instruction
		event           string
	}{
		{f.player1, f.server, types.CreateMatch{MatchID: 5}, types.EventTypeMatchCreated},
		{f.player1, zero, types.CreatePlayerState{MatchID: 5}, types.EventTypePlayerStateCreated},
		{f.player2, f.player2, types.JoinMatch{MatchID: 5}, types.EventTypeMatchJoined},
		{f.server, zero, types.StartRound{MatchID: 5}, types.EventTypeRoundStarted},
		{f.player1, f.player1, types.SubmitInput{MatchID: 5, Tick: 30, DX: 1}, types.EventTypeInputSubmitted},
		{f.server, zero, types.ApplyDamage{MatchID: 5, TargetSlot: types.SlotPlayer2}, types.EventTypeDamageApplied},
		{f.server, zero, types.Forfeit{MatchID: 5, ForfeiterSlot: types.SlotPlayer2}, types.EventTypeMatchSettled},
		{f.server, f.player1, types.ClosePlayerState{MatchID: 5}, types.EventTypePlayerStateClosed},
		{f.server, zero, types.CloseMatch{MatchID: 5}, types.EventTypeMatchClosed},
	}
	for _, step := range steps {
		ctx, err := f.execute(t, step.signer, step.subject, step.ix)
		require.NoError(t, err, step.ix.Name())

		events := ctx.EventManager().Events()
		require.Len(t, events, 1, step.ix.Name())
		require.Equal(t, step.event, events[0].Type)
		_, ok := types.EventAttribute(events[0], types.AttributeKeyData)
		require.True(t, ok)
	}
}

func TestExecuteDerbyAndSession(t *testing.T) {
	f := SetupTest(t)
	relayer := testKey(0x66)
	zero := solana.PublicKey{}

	_, err := f.execute(t, f.player1, f.server, types.CreateDerby{RaceID: 2, VRFSeed: testSeed()})
	require.NoError(t, err)
	_, err = f.execute(t, f.server, zero, types.StartDerby{RaceID: 2})
	require.NoError(t, err)
	_, err = f.execute(t, f.player1, relayer, types.CreateSession{ValidUntil: genesisTime.Unix() + 60})
	require.NoError(t, err)
	_, err = f.execute(t, relayer, f.player1, types.SubmitDerbyInput{RaceID: 2, Tick: 99})
	require.NoError(t, err)
	ctx, err := f.execute(t, f.server, zero, types.DerbyServerUpdate{RaceID: 2, Action: types.CollectBoost{ItemIndex: 1}})
	require.NoError(t, err)
	require.Equal(t, types.EventTypeDerbyUpdated, ctx.EventManager().Events()[0].Type)
	_, err = f.execute(t, f.player1, relayer, types.RevokeSession{})
	require.NoError(t, err)

	d := f.derby(t, 2)
	require.Equal(t, uint32(99), d.CurrentTick)
	require.Equal(t, uint32(199), d.BoostEndTick)

	_, found, err := f.k.GetSession(f.ctx, f.player1, relayer)
	require.NoError(t, err)
	require.False(t, found)
}

func TestExecuteRejectedRequestLeavesNoTrace(t *testing.T) {
	f := SetupTest(t)
	f.activeMatch(t, 1)
	f.tick(t, 1, 11)
	_, err := f.k.ApplyDamage(f.ctx, f.server, 1, types.SlotPlayer2)
	require.NoError(t, err)
	before := f.match(t, 1)

	ctx, err := f.execute(t, f.server, solana.PublicKey{}, types.ApplyDamage{MatchID: 1, TargetSlot: types.SlotPlayer2})
	require.ErrorIs(t, err, types.ErrDamageCooldown)
	require.Empty(t, ctx.EventManager().Events())
	require.Equal(t, before, f.match(t, 1))
}

func TestExecuteRejectsMalformedData(t *testing.T) {
	f := SetupTest(t)

	_, err := f.k.Execute(f.ctx, types.Request{Signer: f.player1, Data: []byte{1, 2, 3}})
	require.ErrorIs(t, err, types.ErrInvalidInstruction)

	data, err := types.EncodeInstruction(types.CreateMatch{MatchID: 1})
	require.NoError(t, err)
	_, err = f.k.Execute(f.ctx, types.Request{Signer: f.player1, Subject: f.server, Data: append(data, 0xff)})
	require.ErrorIs(t, err, types.ErrInvalidInstruction)

	_, found, err := f.k.GetMatch(f.ctx, 1)
	require.NoError(t, err)
	require.False(t, found)
}
