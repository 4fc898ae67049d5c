package model

import (
	"context"
	"time"
)

// Membership is a customer-level entitlement toggled by membership purchases.
type Membership struct {
	Status bool
}

// Update sets membership status. Any transition is allowed.
func (m *Membership) Update(ctx context.Context, status bool, sink EffectSink) error {
	m.Status = status
	return emit(ctx, sink, Effect{Kind: EffectMembershipUpdated, Active: status})
}

// Customer owns exactly one membership.
type Customer struct {
	ID         int64
	Membership *Membership
	CreatedAt  time.Time
}

// NewCustomer creates customer with inactive membership.
func NewCustomer(id int64) *Customer {
	return &Customer{ID: id, Membership: &Membership{}, CreatedAt: time.Now()}
}

// Clone returns a deep copy of the customer.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Membership != nil {
		membership := *c.Membership
		clone.Membership = &membership
	}
	return &clone
}
