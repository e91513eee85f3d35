package dto

import (
	"time"

	"github.com/google/uuid"
)

// PlaceOrderRequest describes a new order payload.
type PlaceOrderRequest struct {
	TicketID string `json:"ticket_id"`
	Quantity int    `json:"quantity"`
}

// VoucherResponse describes a voucher attached to a completed order.
type VoucherResponse struct {
	VoucherID uuid.UUID `json:"voucherId"`
	IsPrint   bool      `json:"isPrint"`
}

// OrderResponse represents an order returned to clients.
type OrderResponse struct {
	Code      string            `json:"code"`
	BuyerID   string            `json:"buyer_id"`
	TicketID  uuid.UUID         `json:"ticket_id"`
	Quantity  int               `json:"quantity"`
	Total     int64             `json:"total"`
	Status    string            `json:"status"`
	Vouchers  []VoucherResponse `json:"vouchers"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// OrderPageResponse is one page of an order listing.
type OrderPageResponse struct {
	Items      []OrderResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
