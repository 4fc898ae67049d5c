package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// OrderRepository stores order aggregates.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*model.Order, error)
	Save(ctx context.Context, order *model.Order) error
}
