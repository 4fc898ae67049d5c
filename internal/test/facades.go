package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/usecase"
)

// PaymentMethodFacadeStub simulates card registration.
type PaymentMethodFacadeStub struct {
	RegisterFn func(context.Context, string) (*model.PaymentMethod, bool, error)
}

// RegisterPaymentMethod delegates to provided function or returns a visa card.
func (s PaymentMethodFacadeStub) RegisterPaymentMethod(ctx context.Context, cardNumber string) (*model.PaymentMethod, bool, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, cardNumber)
	}
	return &model.PaymentMethod{Code: "code", Brand: "visa", Last4: "1111", CreatedAt: time.Unix(0, 0)}, true, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn   func(context.Context, int64, usecase.OrderRequest) (*model.Order, error)
	OrderFn   func(context.Context, int64, uuid.UUID) (*model.Order, error)
	OrdersFn  func(context.Context, int64) ([]*model.Order, error)
	EffectsFn func(context.Context, int64, uuid.UUID) ([]model.Effect, error)
}

// PlaceOrder delegates to provided function or builds the requested order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, customerID int64, req usecase.OrderRequest) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, customerID, req)
	}
	order := model.NewOrder(model.NewCustomer(customerID))
	for _, p := range req.Products {
		order.AddProduct(p)
	}
	return order, nil
}

// Order returns an open order with the requested id.
func (s OrderFacadeStub) Order(ctx context.Context, customerID int64, orderID uuid.UUID) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, customerID, orderID)
	}
	return model.NewOrder(model.NewCustomer(customerID), model.WithID(orderID)), nil
}

// Orders returns predefined orders for given customer.
func (s OrderFacadeStub) Orders(ctx context.Context, customerID int64) ([]*model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, customerID)
	}
	return []*model.Order{model.NewOrder(model.NewCustomer(customerID))}, nil
}

// Effects returns a shipping label effect for the order.
func (s OrderFacadeStub) Effects(ctx context.Context, customerID int64, orderID uuid.UUID) ([]model.Effect, error) {
	if s.EffectsFn != nil {
		return s.EffectsFn(ctx, customerID, orderID)
	}
	return []model.Effect{{OrderID: orderID, Kind: model.EffectShippingLabel, EmittedAt: time.Unix(0, 0)}}, nil
}

// PaymentFacadeStub simulates checkout.
type PaymentFacadeStub struct {
	CheckoutFn func(context.Context, int64, uuid.UUID, string) (*usecase.CheckoutResult, error)
	PaymentFn  func(context.Context, int64, uuid.UUID) (*model.Payment, error)
}

// Checkout returns a paid payment without fulfillment by default.
func (s PaymentFacadeStub) Checkout(ctx context.Context, customerID int64, orderID uuid.UUID, methodCode string) (*usecase.CheckoutResult, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, customerID, orderID, methodCode)
	}
	return &usecase.CheckoutResult{Payment: PaidPayment(customerID, orderID)}, nil
}

// Payment returns a paid payment by default.
func (s PaymentFacadeStub) Payment(ctx context.Context, customerID int64, orderID uuid.UUID) (*model.Payment, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, customerID, orderID)
	}
	return PaidPayment(customerID, orderID), nil
}

// PaidPayment builds a settled payment for the order.
func PaidPayment(customerID int64, orderID uuid.UUID) *model.Payment {
	order := model.NewOrder(model.NewCustomer(customerID), model.WithID(orderID))
	paidAt := time.Unix(0, 0)
	return &model.Payment{
		ID:                  uuid.New(),
		AuthorizationNumber: "auth",
		Amount:              decimal.NewFromInt(10),
		Invoice:             &model.Invoice{BillingAddress: order.Address, ShippingAddress: order.Address, OrderID: orderID},
		Order:               order,
		Method:              model.PaymentMethod{Code: "code", Brand: "visa", Last4: "1111"},
		PaidAt:              &paidAt,
	}
}

// CheckoutFacadeStub aggregates facade dependencies for HTTP layer tests.
type CheckoutFacadeStub struct {
	CustomerFacadeStub
	PaymentMethodFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
}

// JournalFacadeStub mimics worker interactions with the checkout facade.
type JournalFacadeStub struct {
	Batches  [][]model.Effect
	RecordFn func(context.Context, []model.Effect) error
	Recorded [][]model.Effect

	mu    sync.Mutex
	calls int
}

// PendingEffects returns configured batches one per call.
func (s *JournalFacadeStub) PendingEffects(limit int) []model.Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.Batches) {
		return nil
	}
	batch := s.Batches[s.calls]
	s.calls++
	if limit > 0 && len(batch) > limit {
		batch = batch[:limit]
	}
	return batch
}

// RecordEffects stores recorded batches.
func (s *JournalFacadeStub) RecordEffects(ctx context.Context, effects []model.Effect) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, effects)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Recorded = append(s.Recorded, effects)
	return nil
}

// RecordedCount returns number of recorded effects.
func (s *JournalFacadeStub) RecordedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, batch := range s.Recorded {
		n += len(batch)
	}
	return n
}
