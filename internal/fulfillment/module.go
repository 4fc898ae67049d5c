package fulfillment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderflow/internal/config"
	"github.com/polkiloo/orderflow/internal/domain/model"
)

// Module provides the purchase dispatcher.
var Module = fx.Provide(
	newDispatcher,
	func(d *Dispatcher) model.Fulfiller { return d },
)

type dispatcherParams struct {
	fx.In

	Sink   model.EffectSink
	Logger *slog.Logger
	Config *config.Config
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Sink, p.Logger, Options{VoucherPercent: p.Config.VoucherPercent})
}
