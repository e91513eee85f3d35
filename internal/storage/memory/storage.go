// Package memory keeps tickets and orders in process memory. It backs the
// service when no database is configured and mirrors the PostgreSQL
// repositories' guarded updates.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/domain/repository"
)

type txKey struct{}

type txState struct {
	store *Storage
	undo  []func()
}

// Storage acts as repository facade backed by maps guarded by one mutex.
type Storage struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]model.Ticket
	orders  map[string]model.Order
	nextID  int64
	now     func() time.Time
	logger  *slog.Logger
}

type ticketRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

var _ repository.Factory = (*Storage)(nil)

// New creates an empty in-memory storage.
func New(logger *slog.Logger) *Storage {
	return &Storage{
		tickets: make(map[uuid.UUID]model.Ticket),
		orders:  make(map[string]model.Order),
		now:     time.Now,
		logger:  logger,
	}
}

func (s *Storage) Tickets() repository.TicketRepository {
	return &ticketRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

// HealthCheck always succeeds.
func (s *Storage) HealthCheck(context.Context) error { return nil }

// Close is a no-op.
func (s *Storage) Close() {}

// WithinTransaction holds the storage lock for the whole of fn and reverts
// every write made through ctx when fn fails.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := &txState{store: s}
	defer func() {
		if err != nil {
			for i := len(state.undo) - 1; i >= 0; i-- {
				state.undo[i]()
			}
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, state))
}

func (s *Storage) inTx(ctx context.Context) *txState {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && state.store == s {
		return state
	}
	return nil
}

// lock acquires the mutex unless ctx already runs inside this storage's transaction.
func (s *Storage) lock(ctx context.Context) func() {
	if s.inTx(ctx) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// recordUndo registers a compensation for the enclosing transaction, if any.
func (s *Storage) recordUndo(ctx context.Context, undo func()) {
	if state := s.inTx(ctx); state != nil {
		state.undo = append(state.undo, undo)
	}
}

func cloneOrder(o model.Order) *model.Order {
	if o.Vouchers != nil {
		o.Vouchers = append([]model.Voucher(nil), o.Vouchers...)
	}
	return &o
}
