package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// EffectJournal keeps emitted fulfillment effects.
type EffectJournal interface {
	Append(ctx context.Context, effects []model.Effect) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Effect, error)
}
