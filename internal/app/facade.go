package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/domain/repository"
	"github.com/polkiloo/orderflow/internal/usecase"
)

// EffectSource hands out effects emitted since the previous call.
type EffectSource interface {
	Drain(limit int) []model.Effect
}

// CheckoutFacade joins use cases behind the HTTP handlers and the journal worker.
type CheckoutFacade struct {
	customers *usecase.CustomerUseCase
	methods   *usecase.PaymentMethodUseCase
	orders    *usecase.OrderUseCase
	payments  *usecase.PaymentUseCase
	pending   EffectSource
	journal   repository.EffectJournal
}

func NewCheckoutFacade(
	customers *usecase.CustomerUseCase,
	methods *usecase.PaymentMethodUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	pending EffectSource,
	journal repository.EffectJournal,
) *CheckoutFacade {
	return &CheckoutFacade{
		customers: customers,
		methods:   methods,
		orders:    orders,
		payments:  payments,
		pending:   pending,
		journal:   journal,
	}
}

func (f *CheckoutFacade) RegisterCustomer(ctx context.Context) (*model.Customer, string, error) {
	return f.customers.Register(ctx)
}

func (f *CheckoutFacade) Customer(ctx context.Context, customerID int64) (*model.Customer, error) {
	return f.customers.GetByID(ctx, customerID)
}

func (f *CheckoutFacade) ParseToken(token string) (int64, error) {
	return f.customers.ParseToken(token)
}

func (f *CheckoutFacade) RegisterPaymentMethod(ctx context.Context, cardNumber string) (*model.PaymentMethod, bool, error) {
	return f.methods.Register(ctx, cardNumber)
}

func (f *CheckoutFacade) PlaceOrder(ctx context.Context, customerID int64, req usecase.OrderRequest) (*model.Order, error) {
	return f.orders.Place(ctx, customerID, req)
}

func (f *CheckoutFacade) Order(ctx context.Context, customerID int64, orderID uuid.UUID) (*model.Order, error) {
	return f.orders.Get(ctx, customerID, orderID)
}

func (f *CheckoutFacade) Orders(ctx context.Context, customerID int64) ([]*model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *CheckoutFacade) Effects(ctx context.Context, customerID int64, orderID uuid.UUID) ([]model.Effect, error) {
	return f.orders.Effects(ctx, customerID, orderID)
}

func (f *CheckoutFacade) Checkout(ctx context.Context, customerID int64, orderID uuid.UUID, methodCode string) (*usecase.CheckoutResult, error) {
	return f.payments.Checkout(ctx, customerID, orderID, methodCode)
}

func (f *CheckoutFacade) Payment(ctx context.Context, customerID int64, orderID uuid.UUID) (*model.Payment, error) {
	return f.payments.PaymentForOrder(ctx, customerID, orderID)
}

func (f *CheckoutFacade) PendingEffects(limit int) []model.Effect {
	return f.pending.Drain(limit)
}

func (f *CheckoutFacade) RecordEffects(ctx context.Context, effects []model.Effect) error {
	return f.journal.Append(ctx, effects)
}
