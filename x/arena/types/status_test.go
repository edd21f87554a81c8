package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arenaledger/arena-node/x/arena/types"
)

func TestMatchStatusTransitions(t *testing.T) {
	require.True(t, types.MatchStatusWaitingForPlayer.CanTransitionTo(types.MatchStatusCountdown))
	require.True(t, types.MatchStatusCountdown.CanTransitionTo(types.MatchStatusActive))
	require.True(t, types.MatchStatusActive.CanTransitionTo(types.MatchStatusRoundEnd))
	require.True(t, types.MatchStatusActive.CanTransitionTo(types.MatchStatusComplete))
	require.True(t, types.MatchStatusRoundEnd.CanTransitionTo(types.MatchStatusActive))

	require.False(t, types.MatchStatusCountdown.CanTransitionTo(types.MatchStatusWaitingForPlayer))
	require.False(t, types.MatchStatusRoundEnd.CanTransitionTo(types.MatchStatusComplete))
	require.False(t, types.MatchStatusComplete.CanTransitionTo(types.MatchStatusActive))
	require.True(t, types.MatchStatusComplete.IsTerminal())

	require.False(t, types.MatchStatus(5).IsValid())
	require.Equal(t, "MatchStatus(5)", types.MatchStatus(5).String())
}

func TestDerbyStatusTransitions(t *testing.T) {
	require.True(t, types.DerbyStatusCreated.CanTransitionTo(types.DerbyStatusRacing))
	require.True(t, types.DerbyStatusRacing.CanTransitionTo(types.DerbyStatusFinished))
	require.False(t, types.DerbyStatusRacing.CanTransitionTo(types.DerbyStatusCreated))
	require.False(t, types.DerbyStatusFinished.CanTransitionTo(types.DerbyStatusRacing))
	require.Equal(t, "RACING", types.DerbyStatusRacing.String())
}

func TestBitmasks(t *testing.T) {
	var b types.Bits8
	b = b.With(0).With(3)
	require.True(t, b.Has(3))
	require.False(t, b.Has(1))
	require.False(t, b.Has(9))
	require.Equal(t, b, b.With(8))
	require.True(t, b.With(1).With(2).Contains(types.Bits8(types.AllCheckpoints)))

	var g types.Bits16
	g = g.With(14)
	require.True(t, g.Has(14))
	require.False(t, g.Has(16))
}
