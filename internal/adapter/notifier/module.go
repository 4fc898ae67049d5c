package notifier

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderflow/internal/config"
	"github.com/polkiloo/orderflow/internal/domain/model"
)

const (
	deliveryBacklog = 256
	deliveryWorkers = 2
)

// Module contributes the push notification sink when NOTIFIER_ADDRESS is set.
var Module = fx.Options(
	fx.Provide(
		newSink,
		fx.Annotate(asEffectSink, fx.ResultTags(`group:"effect_sinks"`)),
	),
	fx.Invoke(registerLifecycle),
)

type sinkParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSink(p sinkParams) (*Sink, error) {
	if p.Config.NotifierAddress == "" {
		p.Logger.Info("push notifications disabled")
		return nil, nil
	}
	client, err := NewHTTPClient(p.Config.NotifierAddress, p.Logger)
	if err != nil {
		return nil, err
	}
	return NewSink(client, p.Logger, deliveryBacklog, deliveryWorkers), nil
}

func asEffectSink(s *Sink) model.EffectSink {
	if s == nil {
		return nil
	}
	return s
}

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Sink      *Sink
}

func registerLifecycle(p lifecycleParams) {
	if p.Sink == nil {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Sink.Start(context.WithoutCancel(ctx))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return p.Sink.Stop(ctx)
		},
	})
}
