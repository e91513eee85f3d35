package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
)

var ticketRowColumns = []string{"id", "event_id", "name", "price", "quantity", "created_at", "updated_at"}

func ticketRows(id uuid.UUID, quantity int) *pgxmockv3.Rows {
	now := time.Now()
	return pgxmockv3.NewRows(ticketRowColumns).AddRow(id, "event-1", "Regular", int64(50000), quantity, now, now)
}

func TestTicketRepositoryGet(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &ticketRepository{storage: storage}
	id := uuid.New()

	mock.ExpectQuery("SELECT id, event_id, name, price, quantity, created_at, updated_at FROM tickets WHERE id=").
		WithArgs(id).WillReturnRows(ticketRows(id, 5))
	ticket, err := repo.Get(context.Background(), id)
	if err != nil || ticket.ID != id || ticket.Quantity != 5 || ticket.Price != 50000 {
		t.Fatalf("unexpected ticket: %+v err=%v", ticket, err)
	}

	mock.ExpectQuery("FROM tickets WHERE id=").WithArgs(id).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(context.Background(), id); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM tickets WHERE id=").WithArgs(id).WillReturnError(errors.New("fail"))
	if _, err := repo.Get(context.Background(), id); err == nil || errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected raw error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestTicketRepositoryDecrement(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &ticketRepository{storage: storage}
	id := uuid.New()

	mock.ExpectQuery("UPDATE tickets SET quantity = quantity - ").WithArgs(id, 2).WillReturnRows(ticketRows(id, 3))
	ticket, err := repo.Decrement(context.Background(), id, 2)
	if err != nil || ticket.Quantity != 3 {
		t.Fatalf("unexpected result: %+v err=%v", ticket, err)
	}

	mock.ExpectQuery("UPDATE tickets SET quantity = quantity - ").WithArgs(id, 10).WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("FROM tickets WHERE id=").WithArgs(id).WillReturnRows(ticketRows(id, 3))
	if _, err := repo.Decrement(context.Background(), id, 10); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	mock.ExpectQuery("UPDATE tickets SET quantity = quantity - ").WithArgs(id, 1).WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("FROM tickets WHERE id=").WithArgs(id).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Decrement(context.Background(), id, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("UPDATE tickets SET quantity = quantity - ").WithArgs(id, 1).WillReturnError(errors.New("boom"))
	if _, err := repo.Decrement(context.Background(), id, 1); err == nil {
		t.Fatal("expected error")
	}

	if _, err := repo.Decrement(context.Background(), id, 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestTicketRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &ticketRepository{storage: storage}
	nt := model.NewTicket{EventID: "event-1", Name: "VIP", Price: 150000, Quantity: 20}
	now := time.Now()

	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(pgxmockv3.AnyArg(), "event-1", "VIP", int64(150000), 20).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	ticket, err := repo.Create(context.Background(), nt)
	if err != nil || ticket.ID == uuid.Nil || ticket.Quantity != 20 || ticket.Name != "VIP" {
		t.Fatalf("unexpected ticket: %+v err=%v", ticket, err)
	}

	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(pgxmockv3.AnyArg(), "event-1", "VIP", int64(150000), 20).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), nt); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(pgxmockv3.AnyArg(), "event-1", "VIP", int64(150000), 20).
		WillReturnError(errors.New("insert"))
	if _, err := repo.Create(context.Background(), nt); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestTicketRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &ticketRepository{storage: storage}
	id := uuid.New()
	quantity := 40
	update := model.TicketUpdate{Quantity: &quantity}

	mock.ExpectQuery("UPDATE tickets SET").WithArgs(id, update.Name, update.Price, update.Quantity).WillReturnRows(ticketRows(id, 40))
	ticket, err := repo.Update(context.Background(), id, update)
	if err != nil || ticket.Quantity != 40 {
		t.Fatalf("unexpected result: %+v err=%v", ticket, err)
	}

	mock.ExpectQuery("UPDATE tickets SET").WithArgs(id, update.Name, update.Price, update.Quantity).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Update(context.Background(), id, update); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestTicketRepositoryUsesTransaction(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &ticketRepository{storage: storage}
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE tickets SET quantity = quantity - ").WithArgs(id, 1).WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("FROM tickets WHERE id=").WithArgs(id).WillReturnRows(ticketRows(id, 0))
	mock.ExpectRollback()

	err := storage.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := repo.Decrement(ctx, id, 1)
		return err
	})
	if !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
