package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/ticketing/internal/app"
	"github.com/polkiloo/ticketing/internal/config"
	"github.com/polkiloo/ticketing/internal/logger"
	"github.com/polkiloo/ticketing/internal/pkg/auth"
	"github.com/polkiloo/ticketing/internal/pkg/voucher"
	"github.com/polkiloo/ticketing/internal/server/http/router"
	"github.com/polkiloo/ticketing/internal/storage"
	"github.com/polkiloo/ticketing/internal/usecase"
)

// Module composes the whole service graph. opts are appended last so tests can fx.Replace parts of it.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		voucher.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
