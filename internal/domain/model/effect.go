package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EffectKind enumerates observable fulfillment side effects.
type EffectKind string

const (
	EffectShippingLabel     EffectKind = "SHIPPING_LABEL"
	EffectNotification      EffectKind = "NOTIFICATION"
	EffectVoucher           EffectKind = "VOUCHER"
	EffectMembershipUpdated EffectKind = "MEMBERSHIP_UPDATED"
)

// Effect is a single side effect emitted while fulfilling an order.
type Effect struct {
	OrderID   uuid.UUID
	Kind      EffectKind
	Title     string
	Body      string
	Percent   int
	Active    bool
	EmittedAt time.Time
}

// String renders the effect as a human readable line.
func (e Effect) String() string {
	switch e.Kind {
	case EffectShippingLabel:
		return "generate shipping label to send"
	case EffectNotification:
		return fmt.Sprintf("notification %q: %s", e.Title, e.Body)
	case EffectVoucher:
		return fmt.Sprintf("generate discount %d%%", e.Percent)
	case EffectMembershipUpdated:
		return fmt.Sprintf("membership active(%t)", e.Active)
	default:
		return string(e.Kind)
	}
}

// EffectSink receives fulfillment side effects.
type EffectSink interface {
	Emit(ctx context.Context, effect Effect) error
}

// EffectSinkFunc adapts a function to EffectSink.
type EffectSinkFunc func(ctx context.Context, effect Effect) error

// Emit calls f.
func (f EffectSinkFunc) Emit(ctx context.Context, effect Effect) error {
	return f(ctx, effect)
}

func emit(ctx context.Context, sink EffectSink, effect Effect) error {
	if effect.EmittedAt.IsZero() {
		effect.EmittedAt = time.Now()
	}
	return sink.Emit(ctx, effect)
}
