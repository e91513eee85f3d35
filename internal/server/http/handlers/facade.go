package handlers

import (
	"context"

	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/server/http/middleware"
)

// TicketFacade exposes ticket inventory operations.
type TicketFacade interface {
	Ticket(ctx context.Context, id string) (*model.Ticket, error)
	CreateTicket(ctx context.Context, identity model.Identity, input model.NewTicket) (*model.Ticket, error)
	UpdateTicket(ctx context.Context, identity model.Identity, id string, update model.TicketUpdate) (*model.Ticket, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, identity model.Identity, input model.PlaceOrderInput) (*model.Order, error)
	Order(ctx context.Context, code string, identity model.Identity) (*model.Order, error)
	CompleteOrder(ctx context.Context, code string, identity model.Identity) (*model.Order, error)
	CancelOrder(ctx context.Context, code string, identity model.Identity) (*model.Order, error)
	MarkOrderPending(ctx context.Context, code string, identity model.Identity) (*model.Order, error)
	Orders(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error)
	MemberOrders(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error)
}

// VoucherFacade renders and verifies vouchers.
type VoucherFacade interface {
	VoucherQR(ctx context.Context, code, voucherID string, identity model.Identity, size int) ([]byte, error)
	VerifyVoucher(ctx context.Context, identity model.Identity, payload string) (*model.VoucherCheck, error)
}

// HealthFacade reports storage availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// BoxOfficeFacade aggregates the full set of operations used across handlers.
type BoxOfficeFacade interface {
	middleware.IdentityParser
	TicketFacade
	OrderFacade
	VoucherFacade
	HealthFacade
}
