package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
)

// PaymentMethod is an opaque handle to a stored card.
type PaymentMethod struct {
	Code      string
	Brand     string
	Last4     string
	CreatedAt time.Time
}

// Invoice snapshots order addresses at payment time.
type Invoice struct {
	BillingAddress  Address
	ShippingAddress Address
	OrderID         uuid.UUID
}

// FulfilledItem records an item handled during a purchase pass.
type FulfilledItem struct {
	Index   int
	Product Product
	// Warning is set when the item took effect but a follow-up step failed.
	Warning error
}

// SkippedItem records an item whose fulfillment did not happen.
type SkippedItem struct {
	Index   int
	Product Product
	Reason  error
}

// FulfillmentReport summarises a purchase pass over an order.
type FulfillmentReport struct {
	Fulfilled []FulfilledItem
	Skipped   []SkippedItem
}

// Fulfiller performs fulfillment of a paid order.
type Fulfiller interface {
	Fulfill(ctx context.Context, order *Order) FulfillmentReport
}

// AuthorizationIssuer hands out unique authorization numbers.
type AuthorizationIssuer interface {
	Next() string
}

// Payment records settlement of an order.
type Payment struct {
	ID                  uuid.UUID
	AuthorizationNumber string
	Amount              decimal.Decimal
	Invoice             *Invoice
	Order               *Order
	Method              PaymentMethod
	PaidAt              *time.Time
}

// NewPayment creates an unpaid payment for the order.
func NewPayment(order *Order, method PaymentMethod) *Payment {
	return &Payment{ID: uuid.New(), Order: order, Method: method, Amount: decimal.Zero}
}

// IsPaid reports whether the payment went through.
func (p *Payment) IsPaid() bool {
	return p.PaidAt != nil
}

// Pay settles the order, fulfills its items and closes it with the same timestamp.
// Paying twice, paying a closed order or an order without items fails before any side effect.
func (p *Payment) Pay(ctx context.Context, at time.Time, issuer AuthorizationIssuer, fulfiller Fulfiller) (FulfillmentReport, error) {
	switch {
	case p.IsPaid():
		return FulfillmentReport{}, domainErrors.ErrAlreadyPaid
	case p.Order.IsClosed():
		return FulfillmentReport{}, domainErrors.ErrOrderClosed
	case len(p.Order.Items) == 0:
		return FulfillmentReport{}, domainErrors.ErrEmptyOrder
	}

	p.Amount = p.Order.TotalAmount()
	p.AuthorizationNumber = issuer.Next()
	p.Invoice = &Invoice{
		BillingAddress:  p.Order.Address,
		ShippingAddress: p.Order.Address,
		OrderID:         p.Order.ID,
	}
	p.PaidAt = &at

	report := fulfiller.Fulfill(ctx, p.Order)
	p.Order.Close(at)
	return report, nil
}

// Clone returns a deep copy of the payment and its order.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Order = p.Order.Clone()
	if p.Invoice != nil {
		invoice := *p.Invoice
		clone.Invoice = &invoice
	}
	if p.PaidAt != nil {
		paidAt := *p.PaidAt
		clone.PaidAt = &paidAt
	}
	return &clone
}
