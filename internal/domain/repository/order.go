package repository

import (
	"context"
	"time"

	"github.com/polkiloo/ticketing/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create fails with ErrAlreadyExists when the code is taken.
	Create(ctx context.Context, order model.NewOrder) (*model.Order, error)
	FindByCode(ctx context.Context, code string) (*model.Order, error)
	FindByCodeAndBuyer(ctx context.Context, code, buyerID string) (*model.Order, error)
	// TransitionToCompleted sets status and vouchers in one write, only while the order is pending.
	TransitionToCompleted(ctx context.Context, code, buyerID string, vouchers []model.Voucher) (*model.Order, error)
	// TransitionToCancelled cancels a pending order. Empty buyerID skips the ownership check.
	TransitionToCancelled(ctx context.Context, code, buyerID string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error)
	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.Order, error)
}
