package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Tickets() TicketRepository
	Orders() OrderRepository
	Transactor
	HealthCheck(ctx context.Context) error
	Close()
}

// Transactor runs fn atomically. Repositories called with the ctx passed to fn join the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
