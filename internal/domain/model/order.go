package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderStatusPending && (next == OrderStatusCompleted || next == OrderStatusCancelled)
}

// Order is a buyer's request for a quantity of one ticket type.
type Order struct {
	ID        int64       `json:"-"`
	Code      string      `json:"code"`
	BuyerID   string      `json:"buyer_id"`
	TicketID  uuid.UUID   `json:"ticket_id"`
	Quantity  int         `json:"quantity"`
	Total     int64       `json:"total"`
	Status    OrderStatus `json:"status"`
	Vouchers  []Voucher   `json:"vouchers"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewOrder holds attributes of an order being persisted.
type NewOrder struct {
	Code     string
	BuyerID  string
	TicketID uuid.UUID
	Quantity int
	Total    int64
}

// Voucher is a single admission credential attached to a completed order.
type Voucher struct {
	ID      uuid.UUID `json:"voucherId"`
	IsPrint bool      `json:"isPrint"`
}

// PlaceOrderInput is the buyer supplied part of a new order.
type PlaceOrderInput struct {
	TicketID string `json:"ticket_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// VoucherCheck is the outcome of verifying a scanned voucher.
type VoucherCheck struct {
	OrderCode string    `json:"order_code"`
	Voucher   Voucher   `json:"voucher"`
	BuyerID   string    `json:"buyer_id"`
	TicketID  uuid.UUID `json:"ticket_id"`
}
