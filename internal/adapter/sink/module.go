package sink

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderflow/internal/config"
	"github.com/polkiloo/orderflow/internal/domain/model"
)

// queueBatches is how many journal batches the queue can hold before dropping effects.
const queueBatches = 64

// Module provides the effect sink used by fulfillment.
// Extra sinks join through the "effect_sinks" value group.
var Module = fx.Provide(
	newQueue,
	newEffectSink,
)

type queueParams struct {
	fx.In

	Config *config.Config
}

func newQueue(p queueParams) *Queue {
	return NewQueue(p.Config.JournalBatchSize * queueBatches)
}

type effectSinkParams struct {
	fx.In

	Queue  *Queue
	Logger *slog.Logger
	Extra  []model.EffectSink `group:"effect_sinks"`
}

func newEffectSink(p effectSinkParams) model.EffectSink {
	sinks := FanOut{
		NewLogSink(p.Logger),
		NewBestEffort("journal", p.Queue, p.Logger),
	}
	for _, extra := range p.Extra {
		if extra == nil {
			continue
		}
		sinks = append(sinks, NewBestEffort("extra", extra, p.Logger))
	}
	return sinks
}
