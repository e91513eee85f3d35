package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/ticketing/internal/config"
	"github.com/polkiloo/ticketing/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewBoxOfficeFacade,
		newHTTPServer,
		newPendingSweeper,
	),
	fx.Invoke(registerLifecycle),
)

const readHeaderTimeout = 5 * time.Second

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type workerParams struct {
	fx.In

	Facade *BoxOfficeFacade
	Config *config.Config
	Logger *slog.Logger
}

func newPendingSweeper(p workerParams) *worker.PendingSweeper {
	return worker.NewPendingSweeper(
		p.Facade,
		p.Config.SweepInterval,
		p.Config.PendingOrderTTL,
		p.Config.SweepBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.PendingSweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting ticketing",
				slog.String("addr", p.Server.Addr),
				slog.Duration("pending_ttl", p.Config.PendingOrderTTL),
				slog.Duration("sweep_interval", p.Config.SweepInterval),
			)
			// the start context expires once startup completes
			p.Sweeper.Start(context.WithoutCancel(ctx))
			go serve(p)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()
			if err := shutdownServer(ctx, p.Server, p.Config.ShutdownTimeout); err != nil {
				return err
			}
			p.Logger.Info("ticketing stopped")
			return nil
		},
	})
}

func serve(p lifecycleParams) {
	err := p.Server.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	p.Logger.Error("http server terminated", slog.String("error", err.Error()))
	if err := p.Shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
		p.Logger.Error("request shutdown failed", slog.String("error", err.Error()))
	}
}

// shutdownServer bounds graceful shutdown by timeout unless ctx already carries a deadline.
func shutdownServer(ctx context.Context, server *http.Server, timeout time.Duration) error {
	if _, ok := ctx.Deadline(); !ok && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
