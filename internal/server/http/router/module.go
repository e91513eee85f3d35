package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/ticketing/internal/app"
	"github.com/polkiloo/ticketing/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(
		func(f *app.BoxOfficeFacade) handlers.BoxOfficeFacade { return f },
		Setup,
	),
)
