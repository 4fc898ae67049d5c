package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// JournalFacade exposes the subset of application functionality required by the worker.
type JournalFacade interface {
	PendingEffects(limit int) []model.Effect
	RecordEffects(ctx context.Context, effects []model.Effect) error
}

// JournalProcessor drains emitted effects and writes them to the journal concurrently.
type JournalProcessor struct {
	facade        JournalFacade
	flushInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan []model.Effect
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewJournalProcessor constructs journal worker pool.
func NewJournalProcessor(facade JournalFacade, flushInterval time.Duration, batchSize, workers int, logger *slog.Logger) *JournalProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &JournalProcessor{
		facade:        facade,
		flushInterval: flushInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan []model.Effect, workers),
	}
}

// Start launches background processing.
func (p *JournalProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish and flushes effects still pending.
func (p *JournalProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
	return p.Flush(ctx)
}

// Flush writes every pending effect using up to workers concurrent writers.
func (p *JournalProcessor) Flush(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for {
		batch := p.facade.PendingEffects(p.batchSize)
		if len(batch) == 0 {
			break
		}
		g.Go(func() error {
			return p.facade.RecordEffects(gctx, batch)
		})
	}
	return g.Wait()
}

func (p *JournalProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *JournalProcessor) fetchAndDispatch(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		batch := p.facade.PendingEffects(p.batchSize)
		if len(batch) == 0 {
			return
		}
		select {
		case <-ctx.Done():
			p.record(context.WithoutCancel(ctx), batch)
			return
		case p.jobs <- batch:
		}
	}
}

func (p *JournalProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for batch := range p.jobs {
		// Batches already drained from the queue are written even while stopping.
		p.record(context.WithoutCancel(ctx), batch)
	}
}

func (p *JournalProcessor) record(ctx context.Context, batch []model.Effect) {
	if err := p.facade.RecordEffects(ctx, batch); err != nil {
		p.logger.Error("record effects failed",
			slog.Int("count", len(batch)),
			slog.String("order_id", batch[0].OrderID.String()),
			slog.String("error", err.Error()),
		)
	}
}
