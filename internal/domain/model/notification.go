package model

import (
	"context"

	"github.com/google/uuid"
)

// Notification is a message delivered to the customer after a purchase.
type Notification struct {
	Title string
	Body  string
}

// NewNotification constructs Notification.
func NewNotification(title, body string) Notification {
	return Notification{Title: title, Body: body}
}

// Send emits the notification for the given order.
func (n Notification) Send(ctx context.Context, orderID uuid.UUID, sink EffectSink) error {
	return emit(ctx, sink, Effect{OrderID: orderID, Kind: EffectNotification, Title: n.Title, Body: n.Body})
}

// Voucher grants a percentage discount.
type Voucher struct {
	Percent int
}

// NewVoucher constructs Voucher.
func NewVoucher(percent int) Voucher {
	return Voucher{Percent: percent}
}

// Generate emits the voucher for the given order.
func (v Voucher) Generate(ctx context.Context, orderID uuid.UUID, sink EffectSink) error {
	return emit(ctx, sink, Effect{OrderID: orderID, Kind: EffectVoucher, Percent: v.Percent})
}
