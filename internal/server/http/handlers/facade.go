package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/usecase"
)

// CustomerFacade describes customer registration and authentication.
type CustomerFacade interface {
	RegisterCustomer(ctx context.Context) (*model.Customer, string, error)
	Customer(ctx context.Context, customerID int64) (*model.Customer, error)
	ParseToken(token string) (int64, error)
}

// PaymentMethodFacade registers cards.
type PaymentMethodFacade interface {
	RegisterPaymentMethod(ctx context.Context, cardNumber string) (*model.PaymentMethod, bool, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, customerID int64, req usecase.OrderRequest) (*model.Order, error)
	Order(ctx context.Context, customerID int64, orderID uuid.UUID) (*model.Order, error)
	Orders(ctx context.Context, customerID int64) ([]*model.Order, error)
	Effects(ctx context.Context, customerID int64, orderID uuid.UUID) ([]model.Effect, error)
}

// PaymentFacade settles orders.
type PaymentFacade interface {
	Checkout(ctx context.Context, customerID int64, orderID uuid.UUID, methodCode string) (*usecase.CheckoutResult, error)
	Payment(ctx context.Context, customerID int64, orderID uuid.UUID) (*model.Payment, error)
}

// CheckoutFacade aggregates the full set of operations used across handlers.
type CheckoutFacade interface {
	CustomerFacade
	PaymentMethodFacade
	OrderFacade
	PaymentFacade
}
