package model

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a purchasable ticket type with remaining stock.
type Ticket struct {
	ID        uuid.UUID `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTicket holds attributes of a ticket type being registered.
type NewTicket struct {
	EventID  string `validate:"required,max=128"`
	Name     string `validate:"required,max=256"`
	Price    int64  `validate:"gte=0"`
	Quantity int    `validate:"gte=0"`
}

// TicketUpdate changes price and/or absolute stock. Nil fields stay as is.
type TicketUpdate struct {
	Name     *string `validate:"omitempty,max=256"`
	Price    *int64  `validate:"omitempty,gte=0"`
	Quantity *int    `validate:"omitempty,gte=0"`
}
