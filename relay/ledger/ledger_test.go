package ledger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arenaledger/arena-node/relay/config"
	"github.com/arenaledger/arena-node/relay/ledger"
	"github.com/arenaledger/arena-node/x/arena/types"
)

var t0 = time.Unix(1_700_000_000, 0).UTC()

var (
	server  = testKey(0xaa)
	player1 = testKey(0x01)
	player2 = testKey(0x02)
)

func testKey(b byte) solana.PublicKey {
	return solana.PublicKeyFromBytes(bytes.Repeat([]byte{b}, solana.PublicKeyLength))
}

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(dbm.NewMemDB(), types.DefaultDirectory(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func request(t *testing.T, signer, subject solana.PublicKey, ix types.Instruction) types.Request {
	t.Helper()
	req, err := types.NewRequest(signer, subject, ix)
	require.NoError(t, err)
	return req
}

func deliverOK(t *testing.T, l *ledger.Ledger, req types.Request) ledger.Result {
	t.Helper()
	res := l.Deliver(req)
	require.NoError(t, res.Err)
	require.True(t, res.IsOK())
	return res
}

func TestBlockLifecycle(t *testing.T) {
	l := newLedger(t)
	require.Equal(t, int64(0), l.Height())

	require.NoError(t, l.BeginBlock(t0))
	res := deliverOK(t, l, request(t, player1, server, types.CreateMatch{MatchID: 1}))
	require.Equal(t, int64(1), res.Height)
	require.Equal(t, types.InstructionCreateMatch, res.Instruction)
	require.Equal(t, player1.String(), res.Signer)
	require.Equal(t, server.String(), res.Subject)
	require.NotEmpty(t, res.Events)
	require.Equal(t, types.EventTypeMatchCreated, res.Events[0].Type)

	// uncommitted writes are invisible to queries
	_, found, err := l.Match(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, found)

	height, err := l.Commit()
	require.NoError(t, err)
	require.Equal(t, int64(1), height)

	m, found, err := l.Match(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, types.MatchStatusWaitingForPlayer, m.Status)
	require.Equal(t, t0.Unix(), m.CreatedAt)
}

func TestRejectedRequest(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.BeginBlock(t0))

	res := l.Deliver(request(t, player2, player2, types.JoinMatch{MatchID: 9}))
	require.False(t, res.IsOK())
	require.ErrorIs(t, res.Err, types.ErrAccountNotFound)
	require.Equal(t, types.HostCodespace, res.Codespace)
	require.Equal(t, uint32(3), res.Code)
	require.Equal(t, types.InstructionJoinMatch, res.Instruction)
	require.Empty(t, res.Events)

	res = l.Deliver(types.Request{Signer: player1, Data: []byte{1, 2, 3}})
	require.ErrorIs(t, res.Err, types.ErrInvalidInstruction)
	require.Empty(t, res.Instruction)

	// a failure inside a block does not disturb earlier successes
	deliverOK(t, l, request(t, player1, server, types.CreateMatch{MatchID: 1}))
	res = l.Deliver(request(t, player1, server, types.CreateMatch{MatchID: 1}))
	require.ErrorIs(t, res.Err, types.ErrAccountInUse)
	_, err := l.Commit()
	require.NoError(t, err)

	_, found, err := l.Match(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
}

func TestBlockOrdering(t *testing.T) {
	l := newLedger(t)

	res := l.Deliver(request(t, player1, server, types.CreateMatch{MatchID: 1}))
	require.ErrorIs(t, res.Err, ledger.ErrNoBlockOpen)

	_, err := l.Commit()
	require.ErrorIs(t, err, ledger.ErrNoBlockOpen)

	require.NoError(t, l.BeginBlock(t0))
	require.ErrorIs(t, l.BeginBlock(t0), ledger.ErrBlockOpen)
	_, err = l.Commit()
	require.NoError(t, err)

	require.ErrorIs(t, l.BeginBlock(t0.Add(-time.Second)), ledger.ErrBlockTooOld)
	require.NoError(t, l.BeginBlock(t0))
}

func TestDiscard(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.BeginBlock(t0))
	deliverOK(t, l, request(t, player1, server, types.CreateMatch{MatchID: 1}))
	l.Discard()

	require.Equal(t, int64(0), l.Height())
	_, found, err := l.Match(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMatchThroughLedger(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.BeginBlock(t0))
	deliverOK(t, l, request(t, player1, server, types.CreateMatch{MatchID: 4}))
	deliverOK(t, l, request(t, player1, solana.PublicKey{}, types.CreatePlayerState{MatchID: 4}))
	deliverOK(t, l, request(t, player2, solana.PublicKey{}, types.CreatePlayerState{MatchID: 4}))
	deliverOK(t, l, request(t, player2, player2, types.JoinMatch{MatchID: 4}))
	deliverOK(t, l, request(t, server, solana.PublicKey{}, types.StartRound{MatchID: 4}))
	deliverOK(t, l, request(t, player1, player1, types.SubmitInput{MatchID: 4, Tick: 5, DX: 1}))
	_, err := l.Commit()
	require.NoError(t, err)

	require.NoError(t, l.BeginBlock(t0.Add(time.Minute)))
	deliverOK(t, l, request(t, server, solana.PublicKey{}, types.Forfeit{MatchID: 4, ForfeiterSlot: types.SlotPlayer2}))
	_, err = l.Commit()
	require.NoError(t, err)

	m, found, err := l.Match(ctx, 4)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, types.MatchStatusComplete, m.Status)
	require.Equal(t, player1, m.Winner)
	require.Equal(t, t0.Add(time.Minute).Unix(), m.SettledAt)

	ps, found, err := l.PlayerState(ctx, 4, player1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint32(5), ps.LastTick)

	gs := l.Export(ctx)
	require.Len(t, gs.Matches, 1)
	require.Len(t, gs.PlayerStates, 2)
}

func TestInitChain(t *testing.T) {
	l := newLedger(t)
	gs := types.DefaultGenesis()
	gs.Derbies = append(gs.Derbies, types.NewDerbyRace(3, server, player1, types.Seed{7}, t0.Unix()))

	require.NoError(t, l.InitChain(t0, gs))
	require.Equal(t, int64(1), l.Height())

	d, found, err := l.Derby(context.Background(), 3)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, types.DerbyStatusCreated, d.Status)

	require.ErrorIs(t, l.InitChain(t0, gs), ledger.ErrAlreadyInit)
}

func TestGoLevelDBPersistence(t *testing.T) {
	cfg := config.Config{NodeHome: t.TempDir(), LedgerBackend: config.LedgerBackendGoLevelDB}

	db, err := ledger.OpenDB(cfg)
	require.NoError(t, err)
	l, err := ledger.New(db, types.DefaultDirectory(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, l.BeginBlock(t0))
	deliverOK(t, l, request(t, player1, server, types.CreateMatch{MatchID: 2}))
	_, err = l.Commit()
	require.NoError(t, err)
	require.NoError(t, l.Close())

	db, err = ledger.OpenDB(cfg)
	require.NoError(t, err)
	l, err = ledger.New(db, types.DefaultDirectory(), zerolog.Nop())
	require.NoError(t, err)
	defer l.Close()

	require.Equal(t, int64(1), l.Height())
	_, found, err := l.Match(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, found)
}

func TestOpenDBUnknownBackend(t *testing.T) {
	_, err := ledger.OpenDB(config.Config{LedgerBackend: "rocksdb"})
	require.Error(t, err)
}
