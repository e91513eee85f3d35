package memory

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
)

func (r *ticketRepository) Get(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	s := r.storage
	defer s.lock(ctx)()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &ticket, nil
}

func (r *ticketRepository) Decrement(ctx context.Context, id uuid.UUID, amount int) (*model.Ticket, error) {
	if amount < 1 {
		return nil, domainErrors.ErrValidation
	}
	s := r.storage
	defer s.lock(ctx)()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if ticket.Quantity < amount {
		return nil, domainErrors.ErrInsufficientStock
	}

	previous := ticket
	ticket.Quantity -= amount
	ticket.UpdatedAt = s.now()
	s.tickets[id] = ticket
	s.recordUndo(ctx, func() { s.tickets[id] = previous })
	return &ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, nt model.NewTicket) (*model.Ticket, error) {
	s := r.storage
	defer s.lock(ctx)()

	now := s.now()
	ticket := model.Ticket{
		ID:        uuid.New(),
		EventID:   nt.EventID,
		Name:      nt.Name,
		Price:     nt.Price,
		Quantity:  nt.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tickets[ticket.ID] = ticket
	s.recordUndo(ctx, func() { delete(s.tickets, ticket.ID) })
	return &ticket, nil
}

func (r *ticketRepository) Update(ctx context.Context, id uuid.UUID, update model.TicketUpdate) (*model.Ticket, error) {
	s := r.storage
	defer s.lock(ctx)()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	previous := ticket
	if update.Name != nil {
		ticket.Name = *update.Name
	}
	if update.Price != nil {
		ticket.Price = *update.Price
	}
	if update.Quantity != nil {
		ticket.Quantity = *update.Quantity
	}
	ticket.UpdatedAt = s.now()
	s.tickets[id] = ticket
	s.recordUndo(ctx, func() { s.tickets[id] = previous })
	return &ticket, nil
}
