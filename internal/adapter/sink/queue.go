package sink

import (
	"context"
	"errors"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// ErrQueueFull is returned when the queue cannot take another effect.
var ErrQueueFull = errors.New("effect queue is full")

// Queue buffers effects until the journal worker drains them.
type Queue struct {
	ch chan model.Effect
}

// NewQueue creates a queue holding up to capacity effects.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan model.Effect, capacity)}
}

// Emit enqueues without blocking.
func (q *Queue) Emit(ctx context.Context, effect model.Effect) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.ch <- effect:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain removes up to limit queued effects. A non-positive limit drains everything queued.
func (q *Queue) Drain(limit int) []model.Effect {
	var batch []model.Effect
	for limit <= 0 || len(batch) < limit {
		select {
		case e := <-q.ch:
			batch = append(batch, e)
		default:
			return batch
		}
	}
	return batch
}

// Len reports the number of queued effects.
func (q *Queue) Len() int {
	return len(q.ch)
}
