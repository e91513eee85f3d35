package app

import (
	"context"
	"time"

	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/domain/repository"
	"github.com/polkiloo/ticketing/internal/pkg/auth"
	"github.com/polkiloo/ticketing/internal/usecase"
)

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// BoxOfficeFacade aggregates use cases into a single entry point for transports and workers.
type BoxOfficeFacade struct {
	tickets  *usecase.TicketUseCase
	orders   *usecase.OrderUseCase
	vouchers *usecase.VoucherUseCase
	tokens   auth.Strategy
	health   HealthChecker
}

// NewBoxOfficeFacade constructs BoxOfficeFacade.
func NewBoxOfficeFacade(
	tickets *usecase.TicketUseCase,
	orders *usecase.OrderUseCase,
	vouchers *usecase.VoucherUseCase,
	tokens auth.Strategy,
	storage repository.Factory,
) *BoxOfficeFacade {
	return &BoxOfficeFacade{
		tickets:  tickets,
		orders:   orders,
		vouchers: vouchers,
		tokens:   tokens,
		health:   storage,
	}
}

// ParseToken resolves the caller identity carried by a token.
func (f *BoxOfficeFacade) ParseToken(token string) (model.Identity, error) {
	return f.tokens.ParseToken(token)
}

// Ticket returns a ticket by id.
func (f *BoxOfficeFacade) Ticket(ctx context.Context, id string) (*model.Ticket, error) {
	return f.tickets.Get(ctx, id)
}

// CreateTicket adds a ticket to the inventory.
func (f *BoxOfficeFacade) CreateTicket(ctx context.Context, identity model.Identity, input model.NewTicket) (*model.Ticket, error) {
	return f.tickets.Create(ctx, identity, input)
}

// UpdateTicket changes price or remaining quantity of a ticket.
func (f *BoxOfficeFacade) UpdateTicket(ctx context.Context, identity model.Identity, id string, update model.TicketUpdate) (*model.Ticket, error) {
	return f.tickets.Update(ctx, identity, id, update)
}

// PlaceOrder creates a pending order for the caller.
func (f *BoxOfficeFacade) PlaceOrder(ctx context.Context, identity model.Identity, input model.PlaceOrderInput) (*model.Order, error) {
	return f.orders.Place(ctx, identity, input)
}

// Order returns an order visible to the caller.
func (f *BoxOfficeFacade) Order(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	return f.orders.Get(ctx, code, identity)
}

// CompleteOrder fulfils a pending order.
func (f *BoxOfficeFacade) CompleteOrder(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	return f.orders.Complete(ctx, code, identity)
}

// CancelOrder cancels a pending order.
func (f *BoxOfficeFacade) CancelOrder(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	return f.orders.Cancel(ctx, code, identity)
}

// MarkOrderPending confirms an order is still awaiting completion.
func (f *BoxOfficeFacade) MarkOrderPending(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	return f.orders.MarkPending(ctx, code, identity)
}

// Orders lists orders across all buyers.
func (f *BoxOfficeFacade) Orders(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error) {
	return f.orders.List(ctx, identity, filter)
}

// MemberOrders lists orders placed by the caller.
func (f *BoxOfficeFacade) MemberOrders(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error) {
	return f.orders.ListOwn(ctx, identity, filter)
}

// VoucherQR renders a voucher of a completed order as PNG.
func (f *BoxOfficeFacade) VoucherQR(ctx context.Context, code, voucherID string, identity model.Identity, size int) ([]byte, error) {
	return f.vouchers.QRCode(ctx, code, voucherID, identity, size)
}

// VerifyVoucher checks a scanned voucher payload.
func (f *BoxOfficeFacade) VerifyVoucher(ctx context.Context, identity model.Identity, payload string) (*model.VoucherCheck, error) {
	return f.vouchers.Verify(ctx, identity, payload)
}

// StalePendingOrders returns pending orders created before cutoff.
func (f *BoxOfficeFacade) StalePendingOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return f.orders.PendingBefore(ctx, cutoff, limit)
}

// ExpireOrder cancels a stale pending order.
func (f *BoxOfficeFacade) ExpireOrder(ctx context.Context, order model.Order) error {
	return f.orders.Expire(ctx, order)
}

// HealthCheck reports whether storage is reachable.
func (f *BoxOfficeFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
