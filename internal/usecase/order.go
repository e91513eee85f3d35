package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/domain/repository"
	"github.com/polkiloo/ticketing/internal/pkg/voucher"
)

const maxCodeAttempts = 3

// OrderUseCase drives the order lifecycle: placement, completion and cancellation.
//
// Placement is optimistic: stock is checked but not reserved, so a pending
// order may fail at completion with ErrInsufficientStock. Completion writes the
// status, vouchers and stock decrement in one transaction.
type OrderUseCase struct {
	tickets  repository.TicketRepository
	orders   repository.OrderRepository
	tx       repository.Transactor
	vouchers voucher.Issuer
	newCode  CodeGenerator
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	tickets repository.TicketRepository,
	orders repository.OrderRepository,
	tx repository.Transactor,
	vouchers voucher.Issuer,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		tickets:  tickets,
		orders:   orders,
		tx:       tx,
		vouchers: vouchers,
		newCode:  NewOrderCode,
		logger:   logger,
	}
}

// Place validates input, checks current stock and records a pending order.
func (u *OrderUseCase) Place(ctx context.Context, identity model.Identity, input model.PlaceOrderInput) (*model.Order, error) {
	if identity.ID == "" {
		return nil, fmt.Errorf("%w: buyer identity is required", domainErrors.ErrValidation)
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	ticketID, err := uuid.Parse(input.TicketID)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket_id: %w", domainErrors.ErrValidation, err)
	}

	ticket, err := u.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, persistenceError(err)
	}
	if ticket.Quantity < input.Quantity {
		return nil, domainErrors.ErrInsufficientStock
	}
	if ticket.Price > 0 && int64(input.Quantity) > math.MaxInt64/ticket.Price {
		return nil, fmt.Errorf("%w: order total overflows", domainErrors.ErrValidation)
	}

	candidate := model.NewOrder{
		BuyerID:  identity.ID,
		TicketID: ticketID,
		Quantity: input.Quantity,
		Total:    ticket.Price * int64(input.Quantity),
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := u.newCode()
		if err != nil {
			return nil, err
		}
		candidate.Code = code
		order, err := u.orders.Create(ctx, candidate)
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			u.logger.Warn("order code collision", slog.String("code", candidate.Code), slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, persistenceError(err)
		}
		u.logger.Info("order placed",
			slog.String("code", order.Code),
			slog.String("buyer", order.BuyerID),
			slog.Int("quantity", order.Quantity),
			slog.Int64("total", order.Total),
		)
		return order, nil
	}
	return nil, fmt.Errorf("%w: no free order code after %d attempts", domainErrors.ErrPersistence, maxCodeAttempts)
}

// Complete issues vouchers for the caller's pending order and decrements stock.
// If stock ran out since placement the order stays pending.
func (u *OrderUseCase) Complete(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	if code == "" || identity.ID == "" {
		return nil, fmt.Errorf("%w: order code and buyer are required", domainErrors.ErrValidation)
	}

	order, err := u.orders.FindByCodeAndBuyer(ctx, code, identity.ID)
	if err != nil {
		return nil, persistenceError(err)
	}
	if err := terminalStateError(order.Status); err != nil {
		return nil, err
	}

	vouchers, err := u.vouchers.Issue(order.Quantity)
	if err != nil {
		return nil, err
	}

	var completed *model.Order
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if completed, err = u.orders.TransitionToCompleted(ctx, code, identity.ID, vouchers); err != nil {
			return err
		}
		_, err = u.tickets.Decrement(ctx, order.TicketID, order.Quantity)
		return err
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInsufficientStock) {
			u.logger.Warn("order completion rolled back",
				slog.String("code", code),
				slog.String("error", err.Error()),
			)
		}
		return nil, persistenceError(err)
	}

	u.logger.Info("order completed", slog.String("code", code), slog.Int("vouchers", len(completed.Vouchers)))
	return completed, nil
}

// Cancel moves a pending order to cancelled. Members may only cancel their own orders.
// No stock is released because none is held by pending orders.
func (u *OrderUseCase) Cancel(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	if code == "" || identity.ID == "" {
		return nil, fmt.Errorf("%w: order code and caller are required", domainErrors.ErrValidation)
	}
	order, err := u.orders.TransitionToCancelled(ctx, code, ownerScope(identity))
	if err != nil {
		return nil, persistenceError(err)
	}
	u.logger.Info("order cancelled", slog.String("code", code), slog.String("by", identity.ID))
	return order, nil
}

// MarkPending confirms the order is still pending. Orders never return to pending
// from a terminal state, so this is a guarded read.
func (u *OrderUseCase) MarkPending(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	order, err := u.Get(ctx, code, identity)
	if err != nil {
		return nil, err
	}
	if err := terminalStateError(order.Status); err != nil {
		return nil, err
	}
	return order, nil
}

// Get looks an order up by code. Members only see their own orders.
func (u *OrderUseCase) Get(ctx context.Context, code string, identity model.Identity) (*model.Order, error) {
	if code == "" || identity.ID == "" {
		return nil, fmt.Errorf("%w: order code and caller are required", domainErrors.ErrValidation)
	}
	var (
		order *model.Order
		err   error
	)
	if scope := ownerScope(identity); scope != "" {
		order, err = u.orders.FindByCodeAndBuyer(ctx, code, scope)
	} else {
		order, err = u.orders.FindByCode(ctx, code)
	}
	if err != nil {
		return nil, persistenceError(err)
	}
	return order, nil
}

// List returns a filtered page of all orders. Admin only.
func (u *OrderUseCase) List(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error) {
	if !identity.IsAdmin() {
		return model.OrderPage{}, domainErrors.ErrForbidden
	}
	return u.list(ctx, filter)
}

// ListOwn returns a filtered page of the caller's orders.
func (u *OrderUseCase) ListOwn(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error) {
	if identity.ID == "" {
		return model.OrderPage{}, fmt.Errorf("%w: buyer identity is required", domainErrors.ErrValidation)
	}
	filter.BuyerID = identity.ID
	return u.list(ctx, filter)
}

func (u *OrderUseCase) list(ctx context.Context, filter model.OrderFilter) (model.OrderPage, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return model.OrderPage{}, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, filter.Status)
	}
	filter = filter.Normalize()
	items, total, err := u.orders.List(ctx, filter)
	if err != nil {
		return model.OrderPage{}, persistenceError(err)
	}
	return model.NewOrderPage(items, total, filter), nil
}

// PendingBefore returns up to limit pending orders created before cutoff.
func (u *OrderUseCase) PendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	orders, err := u.orders.ListPendingBefore(ctx, cutoff, limit)
	if err != nil {
		return nil, persistenceError(err)
	}
	return orders, nil
}

// Expire cancels a stale pending order on behalf of the system.
func (u *OrderUseCase) Expire(ctx context.Context, order model.Order) error {
	if _, err := u.orders.TransitionToCancelled(ctx, order.Code, ""); err != nil {
		return persistenceError(err)
	}
	u.logger.Info("pending order expired", slog.String("code", order.Code), slog.Time("created_at", order.CreatedAt))
	return nil
}

func terminalStateError(status model.OrderStatus) error {
	switch status {
	case model.OrderStatusCompleted:
		return domainErrors.ErrAlreadyCompleted
	case model.OrderStatusCancelled:
		return domainErrors.ErrOrderCancelled
	}
	return nil
}

// ownerScope returns the buyer id a caller is restricted to, or "" for admins.
func ownerScope(identity model.Identity) string {
	if identity.IsAdmin() {
		return ""
	}
	return identity.ID
}
