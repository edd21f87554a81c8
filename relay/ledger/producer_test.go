package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arenaledger/arena-node/relay/ledger"
	"github.com/arenaledger/arena-node/x/arena/types"
)

type blockRecorder struct {
	mu     sync.Mutex
	blocks []ledger.Block
}

func (r *blockRecorder) handle(_ context.Context, b ledger.Block) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = append(r.blocks, b)
}

func (r *blockRecorder) snapshot() []ledger.Block {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ledger.Block(nil), r.blocks...)
}

func startProducer(t *testing.T, p *ledger.Producer) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, errCh
}

func TestProducerSealsOnInterval(t *testing.T) {
	l := newLedger(t)
	rec := &blockRecorder{}
	p := ledger.NewProducer(l, 10*time.Millisecond, 100, zerolog.Nop(), rec.handle)
	cancel, errCh := startProducer(t, p)

	res, err := p.Submit(context.Background(), request(t, player1, server, types.CreateMatch{MatchID: 1}))
	require.NoError(t, err)
	require.True(t, res.IsOK())
	require.Equal(t, int64(1), res.Height)

	res, err = p.Submit(context.Background(), request(t, player1, server, types.CreateMatch{MatchID: 1}))
	require.NoError(t, err)
	require.ErrorIs(t, res.Err, types.ErrAccountInUse)

	_, found, err := l.Match(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	blocks := rec.snapshot()
	require.Len(t, blocks, 2)
	require.Equal(t, int64(1), blocks[0].Height)
	require.Len(t, blocks[0].Results, 1)
}

func TestProducerSealsWhenFull(t *testing.T) {
	l := newLedger(t)
	rec := &blockRecorder{}
	p := ledger.NewProducer(l, time.Hour, 2, zerolog.Nop(), rec.handle)
	startProducer(t, p)

	var wg sync.WaitGroup
	results := make([]ledger.Result, 2)
	errs := make([]error, 2)
	reqs := []types.Request{
		request(t, player1, server, types.CreateMatch{MatchID: 1}),
		request(t, player1, server, types.CreateMatch{MatchID: 2}),
	}
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = p.Submit(context.Background(), reqs[i])
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.NoError(t, errs[i])
		require.True(t, res.IsOK())
		require.Equal(t, int64(1), res.Height)
	}
	require.Len(t, rec.snapshot(), 1)
}

func TestProducerStopped(t *testing.T) {
	l := newLedger(t)
	p := ledger.NewProducer(l, time.Hour, 10, zerolog.Nop())
	cancel, errCh := startProducer(t, p)
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	_, err := p.Submit(context.Background(), request(t, player1, server, types.CreateMatch{MatchID: 1}))
	require.ErrorIs(t, err, ledger.ErrProducerStopped)
}

func TestSubmitCancelled(t *testing.T) {
	l := newLedger(t)
	p := ledger.NewProducer(l, time.Hour, 10, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Submit(ctx, request(t, player1, server, types.CreateMatch{MatchID: 1}))
	require.ErrorIs(t, err, context.Canceled)
}
