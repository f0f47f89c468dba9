package di

import (
	"github.com/zaidkh/tijara/internal/adapter/renderer"
	"github.com/zaidkh/tijara/internal/app"
	"github.com/zaidkh/tijara/internal/config"
	"github.com/zaidkh/tijara/internal/logger"
	"github.com/zaidkh/tijara/internal/pkg/auth"
	"github.com/zaidkh/tijara/internal/server/http/handlers"
	"github.com/zaidkh/tijara/internal/server/http/router"
	"github.com/zaidkh/tijara/internal/storage/postgres"
	"github.com/zaidkh/tijara/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		renderer.Module,
		usecase.Module,
		fx.Provide(func(client renderer.Client) app.QuoteRenderer { return client }),
		fx.Provide(func(facade *app.StoreFacade) handlers.StoreFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
