package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/marketpanel/internal/adapter/marketplace"
	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/app"
	"github.com/polkiloo/marketpanel/internal/config"
	"github.com/polkiloo/marketpanel/internal/logger"
	"github.com/polkiloo/marketpanel/internal/metrics"
	"github.com/polkiloo/marketpanel/internal/server/http/router"
	"github.com/polkiloo/marketpanel/internal/session"
	"github.com/polkiloo/marketpanel/internal/storage"
	"github.com/polkiloo/marketpanel/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		storage.Module,
		session.Module,
		apiclient.Module,
		marketplace.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
