package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// PaymentRepository stores payments.
type PaymentRepository interface {
	Save(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)
}

// PaymentMethodRepository is the card directory. FetchByHashed resolves an opaque code.
type PaymentMethodRepository interface {
	Create(ctx context.Context, method model.PaymentMethod) (*model.PaymentMethod, bool, error)
	FetchByHashed(ctx context.Context, code string) (*model.PaymentMethod, error)
}
