package sink

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// LogSink writes every effect as a structured log record.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates LogSink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs the effect at info level.
func (s *LogSink) Emit(ctx context.Context, effect model.Effect) error {
	s.logger.InfoContext(ctx, effect.String(),
		slog.String("order_id", effect.OrderID.String()),
		slog.String("kind", string(effect.Kind)),
	)
	return nil
}

// FanOut delivers each effect to all sinks and joins their errors.
type FanOut []model.EffectSink

// Emit forwards effect to every sink, even after a failure.
func (f FanOut) Emit(ctx context.Context, effect model.Effect) error {
	var errs []error
	for _, s := range f {
		if err := s.Emit(ctx, effect); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BestEffort logs delivery failures of the wrapped sink instead of returning them.
type BestEffort struct {
	next   model.EffectSink
	name   string
	logger *slog.Logger
}

// NewBestEffort wraps next.
func NewBestEffort(name string, next model.EffectSink, logger *slog.Logger) *BestEffort {
	return &BestEffort{next: next, name: name, logger: logger}
}

func (b *BestEffort) Emit(ctx context.Context, effect model.Effect) error {
	if err := b.next.Emit(ctx, effect); err != nil {
		b.logger.WarnContext(ctx, "effect delivery failed",
			slog.String("sink", b.name),
			slog.String("order_id", effect.OrderID.String()),
			slog.String("kind", string(effect.Kind)),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Recorder keeps effects in memory in emission order.
type Recorder struct {
	mu      sync.Mutex
	effects []model.Effect
}

func (r *Recorder) Emit(_ context.Context, effect model.Effect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, effect)
	return nil
}

// Effects returns a copy of recorded effects.
func (r *Recorder) Effects() []model.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Effect(nil), r.effects...)
}

// Lines renders recorded effects as text.
func (r *Recorder) Lines() []string {
	effects := r.Effects()
	lines := make([]string, 0, len(effects))
	for _, e := range effects {
		lines = append(lines, e.String())
	}
	return lines
}
