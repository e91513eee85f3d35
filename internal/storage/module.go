// Package storage selects the repository backend for the fx graph.
package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/ticketing/internal/config"
	"github.com/polkiloo/ticketing/internal/domain/repository"
	"github.com/polkiloo/ticketing/internal/storage/memory"
	"github.com/polkiloo/ticketing/internal/storage/postgres"
)

// Module wires storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.TicketRepository { return f.Tickets() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.Transactor { return f },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

var newPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (repository.Factory, error) {
	return postgres.New(ctx, dsn, logger)
}

func newFactory(p storageParams) (repository.Factory, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Warn("database uri is empty, keeping data in memory")
		return memory.New(p.Logger), nil
	}
	return newPostgres(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			factory.Close()
			return nil
		},
	})
}
