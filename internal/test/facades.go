package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/ticketing/internal/domain/model"
)

// TicketFacadeStub implements ticket operations exposed via HTTP.
type TicketFacadeStub struct {
	GetFn    func(context.Context, string) (*model.Ticket, error)
	CreateFn func(context.Context, model.Identity, model.NewTicket) (*model.Ticket, error)
	UpdateFn func(context.Context, model.Identity, string, model.TicketUpdate) (*model.Ticket, error)
}

// Ticket returns configured ticket.
func (s TicketFacadeStub) Ticket(ctx context.Context, id string) (*model.Ticket, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return nil, ErrNotConfigured
}

// CreateTicket returns configured ticket.
func (s TicketFacadeStub) CreateTicket(ctx context.Context, identity model.Identity, input model.NewTicket) (*model.Ticket, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, identity, input)
	}
	return nil, ErrNotConfigured
}

// UpdateTicket returns configured ticket.
func (s TicketFacadeStub) UpdateTicket(ctx context.Context, identity model.Identity, id string, update model.TicketUpdate) (*model.Ticket, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, identity, id, update)
	}
	return nil, ErrNotConfigured
}

// OrderFacadeStub implements order operations exposed via HTTP.
type OrderFacadeStub struct {
	PlaceFn        func(context.Context, model.Identity, model.PlaceOrderInput) (*model.Order, error)
	GetFn          func(context.Context, string, model.Identity) (*model.Order, error)
	CompleteFn     func(context.Context, string, model.Identity) (*model.Order, error)
	CancelFn       func(context.Context, string, model.Identity) (*model.Order, error)
	MarkPendingFn  func(context.Context, string, model.Identity) (*model.Order, error)
	ListFn         func(context.Context, model.Identity, model.OrderFilter) (model.OrderPage, error)
	MemberOrdersFn func(context.Context, model.Identity, model.OrderFilter) (model.OrderPage, error)
}

// PlaceOrder returns configured order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, identity model.Identity, input model.PlaceOrderInput) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, identity, input)
	}
	return nil, ErrNotConfigured
}

// Order returns configured order.
func (s OrderFacadeStub) Order(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, code, identity)
	}
	return nil, ErrNotConfigured
}

// CompleteOrder returns configured order.
func (s OrderFacadeStub) CompleteOrder(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, code, identity)
	}
	return nil, ErrNotConfigured
}

// CancelOrder returns configured order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, code, identity)
	}
	return nil, ErrNotConfigured
}

// MarkOrderPending returns configured order.
func (s OrderFacadeStub) MarkOrderPending(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	if s.MarkPendingFn != nil {
		return s.MarkPendingFn(ctx, code, identity)
	}
	return nil, ErrNotConfigured
}

// Orders returns configured page or an empty one.
func (s OrderFacadeStub) Orders(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, identity, filter)
	}
	return model.NewOrderPage(nil, 0, filter.Normalize()), nil
}

// MemberOrders returns configured page or an empty one.
func (s OrderFacadeStub) MemberOrders(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error) {
	if s.MemberOrdersFn != nil {
		return s.MemberOrdersFn(ctx, identity, filter)
	}
	return model.NewOrderPage(nil, 0, filter.Normalize()), nil
}

// VoucherFacadeStub implements voucher operations exposed via HTTP.
type VoucherFacadeStub struct {
	QRFn     func(context.Context, string, string, model.Identity, int) ([]byte, error)
	VerifyFn func(context.Context, model.Identity, string) (*model.VoucherCheck, error)
}

// VoucherQR returns configured image bytes.
func (s VoucherFacadeStub) VoucherQR(ctx context.Context, code, voucherID string, identity model.Identity, size int) ([]byte, error) {
	if s.QRFn != nil {
		return s.QRFn(ctx, code, voucherID, identity, size)
	}
	return nil, ErrNotConfigured
}

// VerifyVoucher returns configured check result.
func (s VoucherFacadeStub) VerifyVoucher(ctx context.Context, identity model.Identity, payload string) (*model.VoucherCheck, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, identity, payload)
	}
	return nil, ErrNotConfigured
}

// HealthFacadeStub reports configured storage health.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// BoxOfficeFacadeStub combines facade stubs to satisfy the router dependencies.
type BoxOfficeFacadeStub struct {
	TokenParserStub
	TicketFacadeStub
	OrderFacadeStub
	VoucherFacadeStub
	HealthFacadeStub
}

// SweepFacadeStub records expiry requests issued by the pending order sweeper.
type SweepFacadeStub struct {
	mu sync.Mutex

	Batches  [][]model.Order
	Expired  []string
	Cutoffs  []time.Time
	ListErr  error
	ExpireFn func(context.Context, model.Order) error

	calls int
}

// Lock exposes internal mutex for external synchronization.
func (s *SweepFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SweepFacadeStub) Unlock() { s.mu.Unlock() }

// StalePendingOrders hands out configured batches one per call.
func (s *SweepFacadeStub) StalePendingOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cutoffs = append(s.Cutoffs, cutoff)
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	if s.calls >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.calls]
	s.calls++
	if len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

// ExpireOrder records the order code unless ExpireFn rejects it.
func (s *SweepFacadeStub) ExpireOrder(ctx context.Context, order model.Order) error {
	if s.ExpireFn != nil {
		if err := s.ExpireFn(ctx, order); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Expired = append(s.Expired, order.Code)
	return nil
}
