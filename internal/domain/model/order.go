package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// itemTotal is the flat price of every order item until products carry prices.
var itemTotal = decimal.NewFromInt(10)

// OrderItem associates a product with the order that contains it.
type OrderItem struct {
	OrderID uuid.UUID
	Product Product
}

// Total returns item amount.
func (i OrderItem) Total() decimal.Decimal {
	return itemTotal
}

// Order aggregates items bought by a customer.
type Order struct {
	ID        uuid.UUID
	Customer  *Customer
	Items     []OrderItem
	Address   Address
	ClosedAt  *time.Time
	CreatedAt time.Time
}

// OrderOption customises order construction.
type OrderOption func(*Order)

// WithAddress sets shipping/billing address of the order.
func WithAddress(address Address) OrderOption {
	return func(o *Order) {
		o.Address = address
	}
}

// WithID overrides generated order identifier.
func WithID(id uuid.UUID) OrderOption {
	return func(o *Order) {
		o.ID = id
	}
}

// WithCreatedAt overrides creation time.
func WithCreatedAt(at time.Time) OrderOption {
	return func(o *Order) {
		o.CreatedAt = at
	}
}

// NewOrder creates an empty open order for the customer.
func NewOrder(customer *Customer, opts ...OrderOption) *Order {
	order := &Order{
		ID:        uuid.New(),
		Customer:  customer,
		Address:   DefaultAddress,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(order)
	}
	return order
}

// AddProduct appends a new item wrapping the product.
func (o *Order) AddProduct(product Product) {
	o.Items = append(o.Items, OrderItem{OrderID: o.ID, Product: product})
}

// TotalAmount sums item totals. An order without items totals zero.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total())
	}
	return total
}

// Close marks order as closed. Closing again overwrites the timestamp.
func (o *Order) Close(at time.Time) {
	o.ClosedAt = &at
}

// IsClosed reports whether the order was closed.
func (o *Order) IsClosed() bool {
	return o.ClosedAt != nil
}

// GenerateShippingLabel emits a shipping label request for the order.
func (o *Order) GenerateShippingLabel(ctx context.Context, sink EffectSink) error {
	return emit(ctx, sink, Effect{OrderID: o.ID, Kind: EffectShippingLabel})
}

// Clone returns a deep copy of the order including its customer.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Customer = o.Customer.Clone()
	clone.Items = append([]OrderItem(nil), o.Items...)
	if o.ClosedAt != nil {
		closedAt := *o.ClosedAt
		clone.ClosedAt = &closedAt
	}
	return &clone
}
