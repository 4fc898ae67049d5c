package notifier

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// ErrBacklogFull is returned by Emit when no more notifications can be queued.
var ErrBacklogFull = errors.New("notification backlog full")

const maxDeliveryAttempts = 3

type delivery struct {
	orderID      uuid.UUID
	notification model.Notification
}

// Sink queues NOTIFICATION effects and delivers them to a Client in the background.
// Other effect kinds are ignored. Emit never waits on the remote service.
type Sink struct {
	client  Client
	logger  *slog.Logger
	workers int

	deliveries chan delivery
	wg         sync.WaitGroup
	cancel     context.CancelFunc
	mu         sync.Mutex
}

// NewSink creates Sink holding up to capacity undelivered notifications.
func NewSink(client Client, logger *slog.Logger, capacity, workers int) *Sink {
	if capacity <= 0 {
		capacity = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &Sink{
		client:     client,
		logger:     logger,
		workers:    workers,
		deliveries: make(chan delivery, capacity),
	}
}

func (s *Sink) Emit(_ context.Context, effect model.Effect) error {
	if effect.Kind != model.EffectNotification {
		return nil
	}
	select {
	case s.deliveries <- delivery{orderID: effect.OrderID, notification: model.NewNotification(effect.Title, effect.Body)}:
		return nil
	default:
		return ErrBacklogFull
	}
}

// Start launches delivery workers.
func (s *Sink) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}
}

// Stop halts the workers and delivers what is still queued until ctx expires.
func (s *Sink) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case d := <-s.deliveries:
			s.deliver(ctx, d)
		default:
			return nil
		}
	}
}

func (s *Sink) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-s.deliveries:
			s.deliver(ctx, d)
		}
	}
}

func (s *Sink) deliver(ctx context.Context, d delivery) {
	for attempt := 1; ; attempt++ {
		err := s.client.Notify(ctx, d.orderID, d.notification)
		if err == nil {
			return
		}

		var tooMany TooManyRequestsError
		if !errors.As(err, &tooMany) || attempt == maxDeliveryAttempts {
			s.logger.Error("notification delivery failed",
				slog.String("order_id", d.orderID.String()),
				slog.String("title", d.notification.Title),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
			return
		}

		s.logger.Warn("notifier rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
		timer := time.NewTimer(tooMany.RetryAfter)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Error("notification dropped on shutdown",
				slog.String("order_id", d.orderID.String()),
				slog.String("title", d.notification.Title),
			)
			return
		case <-timer.C:
		}
	}
}
