package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/ticketing/internal/domain/model"
)

// TicketRepository describes persistence operations with ticket stock.
type TicketRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	// Decrement subtracts amount only if enough stock remains, atomically.
	Decrement(ctx context.Context, id uuid.UUID, amount int) (*model.Ticket, error)
	Create(ctx context.Context, ticket model.NewTicket) (*model.Ticket, error)
	Update(ctx context.Context, id uuid.UUID, update model.TicketUpdate) (*model.Ticket, error)
}
