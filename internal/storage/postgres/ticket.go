package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
)

const ticketColumns = `id, event_id, name, price, quantity, created_at, updated_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var t model.Ticket
	if err := row.Scan(&t.ID, &t.EventID, &t.Name, &t.Price, &t.Quantity, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepository) Get(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	ticket, err := scanTicket(r.storage.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) Decrement(ctx context.Context, id uuid.UUID, amount int) (*model.Ticket, error) {
	if amount < 1 {
		return nil, domainErrors.ErrValidation
	}
	const query = `UPDATE tickets SET quantity = quantity - $2, updated_at = NOW()
                   WHERE id=$1 AND quantity >= $2
                   RETURNING ` + ticketColumns
	ticket, err := scanTicket(r.storage.conn(ctx).QueryRow(ctx, query, id, amount))
	if err == nil {
		return ticket, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	return nil, domainErrors.ErrInsufficientStock
}

func (r *ticketRepository) Create(ctx context.Context, nt model.NewTicket) (*model.Ticket, error) {
	const query = `INSERT INTO tickets (id, event_id, name, price, quantity) VALUES ($1, $2, $3, $4, $5)
                   RETURNING created_at, updated_at`
	ticket := model.Ticket{
		ID:       uuid.New(),
		EventID:  nt.EventID,
		Name:     nt.Name,
		Price:    nt.Price,
		Quantity: nt.Quantity,
	}
	err := r.storage.conn(ctx).QueryRow(ctx, query, ticket.ID, ticket.EventID, ticket.Name, ticket.Price, ticket.Quantity).
		Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Update(ctx context.Context, id uuid.UUID, update model.TicketUpdate) (*model.Ticket, error) {
	const query = `UPDATE tickets SET
                       name = COALESCE($2, name),
                       price = COALESCE($3, price),
                       quantity = COALESCE($4, quantity),
                       updated_at = NOW()
                   WHERE id=$1
                   RETURNING ` + ticketColumns
	ticket, err := scanTicket(r.storage.conn(ctx).QueryRow(ctx, query, id, update.Name, update.Price, update.Quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}
