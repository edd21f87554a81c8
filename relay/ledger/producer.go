package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/arenaledger/arena-node/x/arena/types"
)

var ErrProducerStopped = errors.New("block producer stopped")

// Block is a committed batch of results.
type Block struct {
	Height  int64
	Time    time.Time
	Results []Result
}

// BlockHandler observes every committed block, in height order.
type BlockHandler func(ctx context.Context, b Block)

type pending struct {
	req  types.Request
	done chan Result
}

// Producer seals submitted requests into ledger blocks. A block is sealed
// once per interval, or early when maxRequests are waiting.
type Producer struct {
	ledger      *Ledger
	interval    time.Duration
	maxRequests int
	logger      zerolog.Logger
	now         func() time.Time
	handlers    []BlockHandler

	submit  chan pending
	stopped chan struct{}
}

// NewProducer creates a producer over l. Handlers run on the producer
// goroutine after each commit.
func NewProducer(l *Ledger, interval time.Duration, maxRequests int, logger zerolog.Logger, handlers ...BlockHandler) *Producer {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	return &Producer{
		ledger:      l,
		interval:    interval,
		maxRequests: maxRequests,
		logger:      logger.With().Str("component", "producer").Logger(),
		now:         time.Now,
		handlers:    handlers,
		submit:      make(chan pending),
		stopped:     make(chan struct{}),
	}
}

// Submit queues req for the next block and waits for its result.
func (p *Producer) Submit(ctx context.Context, req types.Request) (Result, error) {
	item := pending{req: req, done: make(chan Result, 1)}
	select {
	case p.submit <- item:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-p.stopped:
		return Result{}, ErrProducerStopped
	}

	select {
	case res := <-item.done:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-p.stopped:
		// the final seal may still have delivered it
		select {
		case res := <-item.done:
			return res, nil
		default:
			return Result{}, ErrProducerStopped
		}
	}
}

// Run produces blocks until ctx is cancelled. Requests accepted before the
// cancellation are sealed into a final block.
func (p *Producer) Run(ctx context.Context) error {
	defer close(p.stopped)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().
		Dur("interval", p.interval).
		Int("max_requests", p.maxRequests).
		Msg("block producer started")

	var queue []pending
	for {
		select {
		case <-ctx.Done():
			if len(queue) > 0 {
				if err := p.seal(context.WithoutCancel(ctx), queue); err != nil {
					p.logger.Error().Err(err).Msg("failed to seal final block")
				}
			}
			p.logger.Info().Msg("block producer stopped")
			return ctx.Err()
		case item := <-p.submit:
			queue = append(queue, item)
			if len(queue) >= p.maxRequests {
				if err := p.seal(ctx, queue); err != nil {
					return err
				}
				queue = nil
			}
		case <-ticker.C:
			if len(queue) == 0 {
				continue
			}
			if err := p.seal(ctx, queue); err != nil {
				return err
			}
			queue = nil
		}
	}
}

func (p *Producer) seal(ctx context.Context, queue []pending) error {
	t := p.now()
	if err := p.ledger.BeginBlock(t); err != nil {
		return err
	}

	results := make([]Result, len(queue))
	for i, item := range queue {
		results[i] = p.ledger.Deliver(item.req)
	}

	height, err := p.ledger.Commit()
	if err != nil {
		return err
	}

	block := Block{Height: height, Time: t, Results: results}
	for _, h := range p.handlers {
		h(ctx, block)
	}
	for i, item := range queue {
		item.done <- results[i]
	}

	p.logger.Debug().Int64("height", height).Int("requests", len(queue)).Msg("block sealed")
	return nil
}
