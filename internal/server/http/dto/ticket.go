package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTicketRequest describes a ticket type to register.
type CreateTicketRequest struct {
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// UpdateTicketRequest carries optional ticket changes.
type UpdateTicketRequest struct {
	Name     *string `json:"name"`
	Price    *int64  `json:"price"`
	Quantity *int    `json:"quantity"`
}

// TicketResponse represents a ticket returned to clients.
type TicketResponse struct {
	ID        uuid.UUID `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
