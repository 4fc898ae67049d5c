package repository

import (
	"context"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// CustomerRepository stores customers and their memberships.
type CustomerRepository interface {
	Create(ctx context.Context) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Save(ctx context.Context, customer *model.Customer) error
}
