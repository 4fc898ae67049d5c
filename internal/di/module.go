package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderflow/internal/adapter/notifier"
	"github.com/polkiloo/orderflow/internal/adapter/sink"
	"github.com/polkiloo/orderflow/internal/app"
	"github.com/polkiloo/orderflow/internal/config"
	"github.com/polkiloo/orderflow/internal/fulfillment"
	"github.com/polkiloo/orderflow/internal/logger"
	"github.com/polkiloo/orderflow/internal/pkg/auth"
	"github.com/polkiloo/orderflow/internal/pkg/authnum"
	"github.com/polkiloo/orderflow/internal/server/http/router"
	"github.com/polkiloo/orderflow/internal/storage/memory"
	"github.com/polkiloo/orderflow/internal/storage/postgres"
	"github.com/polkiloo/orderflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		authnum.Module,
		postgres.Module,
		memory.Module,
		sink.Module,
		notifier.Module,
		fulfillment.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
