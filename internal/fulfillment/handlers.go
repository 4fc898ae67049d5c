package fulfillment

import (
	"context"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

var (
	bookNotification       = model.NewNotification("Book", "Buy Book Notification")
	digitalNotification    = model.NewNotification("Digital", "Buy Digital Notification")
	membershipNotification = model.NewNotification("Membership", "Buy Membership Notification")
)

func purchasePhysical(ctx context.Context, sink model.EffectSink, order *model.Order, _ model.OrderItem) error {
	return order.GenerateShippingLabel(ctx, sink)
}

func purchaseBook(ctx context.Context, sink model.EffectSink, order *model.Order, _ model.OrderItem) error {
	if err := order.GenerateShippingLabel(ctx, sink); err != nil {
		return err
	}
	return bookNotification.Send(ctx, order.ID, sink)
}

func purchaseDigital(percent int) Handler {
	return func(ctx context.Context, sink model.EffectSink, order *model.Order, _ model.OrderItem) error {
		if err := digitalNotification.Send(ctx, order.ID, sink); err != nil {
			return err
		}
		return model.NewVoucher(percent).Generate(ctx, order.ID, sink)
	}
}

// purchaseMembership keeps the item fulfilled when only the notification fails,
// the membership is already active at that point.
func purchaseMembership(ctx context.Context, sink model.EffectSink, order *model.Order, _ model.OrderItem) error {
	if err := order.Customer.Membership.Update(ctx, true, sink); err != nil {
		return err
	}
	if err := membershipNotification.Send(ctx, order.ID, sink); err != nil {
		return Committed(err)
	}
	return nil
}
