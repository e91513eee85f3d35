package test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/domain/repository"
)

// ErrNotConfigured is returned by stub methods without an override.
var ErrNotConfigured = errors.New("stub method not configured")

// TicketRepositoryStub delegates every call to the matching function field.
type TicketRepositoryStub struct {
	GetFn       func(context.Context, uuid.UUID) (*model.Ticket, error)
	DecrementFn func(context.Context, uuid.UUID, int) (*model.Ticket, error)
	CreateFn    func(context.Context, model.NewTicket) (*model.Ticket, error)
	UpdateFn    func(context.Context, uuid.UUID, model.TicketUpdate) (*model.Ticket, error)
}

func (s TicketRepositoryStub) Get(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return nil, ErrNotConfigured
}

func (s TicketRepositoryStub) Decrement(ctx context.Context, id uuid.UUID, amount int) (*model.Ticket, error) {
	if s.DecrementFn != nil {
		return s.DecrementFn(ctx, id, amount)
	}
	return nil, ErrNotConfigured
}

func (s TicketRepositoryStub) Create(ctx context.Context, ticket model.NewTicket) (*model.Ticket, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, ticket)
	}
	return nil, ErrNotConfigured
}

func (s TicketRepositoryStub) Update(ctx context.Context, id uuid.UUID, update model.TicketUpdate) (*model.Ticket, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return nil, ErrNotConfigured
}

// OrderRepositoryStub delegates every call to the matching function field.
type OrderRepositoryStub struct {
	CreateFn                func(context.Context, model.NewOrder) (*model.Order, error)
	FindByCodeFn            func(context.Context, string) (*model.Order, error)
	FindByCodeAndBuyerFn    func(context.Context, string, string) (*model.Order, error)
	TransitionToCompletedFn func(context.Context, string, string, []model.Voucher) (*model.Order, error)
	TransitionToCancelledFn func(context.Context, string, string) (*model.Order, error)
	ListFn                  func(context.Context, model.OrderFilter) ([]model.Order, int, error)
	ListPendingBeforeFn     func(context.Context, time.Time, int) ([]model.Order, error)
}

func (s OrderRepositoryStub) Create(ctx context.Context, order model.NewOrder) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return nil, ErrNotConfigured
}

func (s OrderRepositoryStub) FindByCode(ctx context.Context, code string) (*model.Order, error) {
	if s.FindByCodeFn != nil {
		return s.FindByCodeFn(ctx, code)
	}
	return nil, ErrNotConfigured
}

func (s OrderRepositoryStub) FindByCodeAndBuyer(ctx context.Context, code, buyerID string) (*model.Order, error) {
	if s.FindByCodeAndBuyerFn != nil {
		return s.FindByCodeAndBuyerFn(ctx, code, buyerID)
	}
	return nil, ErrNotConfigured
}

func (s OrderRepositoryStub) TransitionToCompleted(ctx context.Context, code, buyerID string, vouchers []model.Voucher) (*model.Order, error) {
	if s.TransitionToCompletedFn != nil {
		return s.TransitionToCompletedFn(ctx, code, buyerID, vouchers)
	}
	return nil, ErrNotConfigured
}

func (s OrderRepositoryStub) TransitionToCancelled(ctx context.Context, code, buyerID string) (*model.Order, error) {
	if s.TransitionToCancelledFn != nil {
		return s.TransitionToCancelledFn(ctx, code, buyerID)
	}
	return nil, ErrNotConfigured
}

func (s OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return nil, 0, ErrNotConfigured
}

func (s OrderRepositoryStub) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	if s.ListPendingBeforeFn != nil {
		return s.ListPendingBeforeFn(ctx, before, limit)
	}
	return nil, ErrNotConfigured
}

// TransactorStub runs the callback directly and records how often it was used.
type TransactorStub struct {
	Calls int
	Err   error
}

func (s *TransactorStub) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	s.Calls++
	if s.Err != nil {
		return s.Err
	}
	return fn(ctx)
}

// IssuerStub returns fixed vouchers or an error.
type IssuerStub struct {
	IssueFn func(int) ([]model.Voucher, error)
}

func (s IssuerStub) Issue(quantity int) ([]model.Voucher, error) {
	if s.IssueFn != nil {
		return s.IssueFn(quantity)
	}
	vouchers := make([]model.Voucher, quantity)
	for i := range vouchers {
		vouchers[i] = model.Voucher{ID: uuid.New()}
	}
	return vouchers, nil
}

var (
	_ repository.TicketRepository = TicketRepositoryStub{}
	_ repository.OrderRepository  = OrderRepositoryStub{}
	_ repository.Transactor       = (*TransactorStub)(nil)
)
