package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/domain/repository"
)

// TicketUseCase exposes ticket inventory lookups and administration.
type TicketUseCase struct {
	tickets repository.TicketRepository
	logger  *slog.Logger
}

// NewTicketUseCase constructs TicketUseCase.
func NewTicketUseCase(tickets repository.TicketRepository, logger *slog.Logger) *TicketUseCase {
	return &TicketUseCase{tickets: tickets, logger: logger}
}

// Get returns a ticket by its identifier.
func (u *TicketUseCase) Get(ctx context.Context, rawID string) (*model.Ticket, error) {
	id, err := parseTicketID(rawID)
	if err != nil {
		return nil, err
	}
	ticket, err := u.tickets.Get(ctx, id)
	if err != nil {
		return nil, persistenceError(err)
	}
	return ticket, nil
}

// Create registers a ticket type with initial stock.
func (u *TicketUseCase) Create(ctx context.Context, identity model.Identity, input model.NewTicket) (*model.Ticket, error) {
	if !identity.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	ticket, err := u.tickets.Create(ctx, input)
	if err != nil {
		return nil, persistenceError(err)
	}
	u.logger.Info("ticket created", slog.String("ticket", ticket.ID.String()), slog.Int("quantity", ticket.Quantity))
	return ticket, nil
}

// Update changes a ticket's name, price or absolute stock.
func (u *TicketUseCase) Update(ctx context.Context, identity model.Identity, rawID string, update model.TicketUpdate) (*model.Ticket, error) {
	if !identity.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	id, err := parseTicketID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(update); err != nil {
		return nil, err
	}
	ticket, err := u.tickets.Update(ctx, id, update)
	if err != nil {
		return nil, persistenceError(err)
	}
	u.logger.Info("ticket updated", slog.String("ticket", ticket.ID.String()), slog.Int("quantity", ticket.Quantity))
	return ticket, nil
}

func parseTicketID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid ticket id %q", domainErrors.ErrValidation, raw)
	}
	return id, nil
}
