package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zaidkh/tijara/internal/domain/model"
)

// StoreFacade exposes the subset of application functionality required by the worker.
type StoreFacade interface {
	QuotesForRendering(ctx context.Context, limit int) ([]model.CustomOrder, error)
	RenderQuoteDocument(ctx context.Context, order *model.CustomOrder) (string, error)
	PublishQuoteDocument(ctx context.Context, orderID int64, url string) error
}

// QuoteRenderer polls for sent quotes that still lack a document and
// renders them concurrently.
type QuoteRenderer struct {
	facade       StoreFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.CustomOrder
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewQuoteRenderer constructs the quote rendering worker pool.
func NewQuoteRenderer(facade StoreFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *QuoteRenderer {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &QuoteRenderer{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.CustomOrder, batchSize*workers),
	}
}

// Start launches background rendering. The lifecycle start context is
// cancelled as soon as startup returns, so the pool runs on a detached
// context and stops only via Stop.
func (p *QuoteRenderer) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *QuoteRenderer) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *QuoteRenderer) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
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

func (p *QuoteRenderer) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.QuotesForRendering(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch quotes for rendering failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *QuoteRenderer) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *QuoteRenderer) handleOrder(ctx context.Context, order model.CustomOrder) {
	url, err := p.facade.RenderQuoteDocument(ctx, &order)
	if err != nil {
		p.logger.Error("quote render failed", slog.Int64("order", order.ID), slog.String("error", err.Error()))
		return
	}
	if err := p.facade.PublishQuoteDocument(ctx, order.ID, url); err != nil {
		p.logger.Error("publish quote document failed", slog.Int64("order", order.ID), slog.String("error", err.Error()))
	}
}
