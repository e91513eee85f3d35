package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
)

// SweepFacade exposes the subset of application functionality required by the sweeper.
type SweepFacade interface {
	StalePendingOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
	ExpireOrder(ctx context.Context, order model.Order) error
}

// PendingSweeper cancels pending orders older than the configured TTL.
type PendingSweeper struct {
	facade    SweepFacade
	interval  time.Duration
	ttl       time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger
	now       func() time.Time

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPendingSweeper constructs the sweeper worker pool.
func NewPendingSweeper(facade SweepFacade, interval, ttl time.Duration, batchSize, workers int, logger *slog.Logger) *PendingSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &PendingSweeper{
		facade:    facade,
		interval:  interval,
		ttl:       ttl,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		now:       time.Now,
	}
}

// Start launches background sweeping. A non-positive ttl disables the sweeper.
func (s *PendingSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		s.logger.Info("pending order sweeper disabled")
		return
	}
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.jobs = make(chan model.Order, s.batchSize*s.workers)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx, s.jobs)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx, s.jobs)
}

// Stop waits for all workers to finish.
func (s *PendingSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *PendingSweeper) dispatch(ctx context.Context, jobs chan<- model.Order) {
	defer s.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx, jobs)
		}
	}
}

func (s *PendingSweeper) sweep(ctx context.Context, jobs chan<- model.Order) {
	cutoff := s.now().Add(-s.ttl)
	orders, err := s.facade.StalePendingOrders(ctx, cutoff, s.batchSize)
	if err != nil {
		s.logger.Error("fetch stale pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case jobs <- order:
		}
	}
}

func (s *PendingSweeper) worker(ctx context.Context, jobs <-chan model.Order) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-jobs:
			if !ok {
				return
			}
			s.expire(ctx, order)
		}
	}
}

func (s *PendingSweeper) expire(ctx context.Context, order model.Order) {
	err := s.facade.ExpireOrder(ctx, order)
	switch {
	case err == nil:
	case errors.Is(err, domainErrors.ErrAlreadyCompleted), errors.Is(err, domainErrors.ErrOrderCancelled):
		// settled between listing and expiry
		s.logger.Debug("pending order settled before expiry", slog.String("code", order.Code))
	default:
		s.logger.Error("expire pending order failed", slog.String("code", order.Code), slog.String("error", err.Error()))
	}
}
