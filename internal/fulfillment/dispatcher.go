package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
)

// DefaultVoucherPercent is the discount issued for digital purchases.
const DefaultVoucherPercent = 10

// Handler fulfills a single order item. Effects go to sink.
type Handler func(ctx context.Context, sink model.EffectSink, order *model.Order, item model.OrderItem) error

// Options configures the built-in handlers.
type Options struct {
	VoucherPercent int
}

// Dispatcher routes order items to handlers by product type.
type Dispatcher struct {
	sink   model.EffectSink
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[model.ProductType]Handler
}

// NewDispatcher constructs Dispatcher with the built-in handlers registered.
func NewDispatcher(sink model.EffectSink, logger *slog.Logger, opts Options) *Dispatcher {
	percent := opts.VoucherPercent
	if percent <= 0 {
		percent = DefaultVoucherPercent
	}
	d := &Dispatcher{sink: sink, logger: logger, handlers: make(map[model.ProductType]Handler)}
	d.Register(model.ProductTypePhysical, purchasePhysical)
	d.Register(model.ProductTypeBook, purchaseBook)
	d.Register(model.ProductTypeDigital, purchaseDigital(percent))
	d.Register(model.ProductTypeMembership, purchaseMembership)
	return d
}

// Register installs handler for product type, replacing a previous one.
func (d *Dispatcher) Register(productType model.ProductType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[productType] = handler
}

func (d *Dispatcher) handler(productType model.ProductType) (Handler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handlers[productType]
	return h, ok
}

// Fulfill visits every item of the order in sequence. A failing or unknown item
// is logged and reported, the remaining items are still fulfilled.
func (d *Dispatcher) Fulfill(ctx context.Context, order *model.Order) model.FulfillmentReport {
	var report model.FulfillmentReport
	sink := orderSink{orderID: order.ID, next: d.sink}

	for i, item := range order.Items {
		h, ok := d.handler(item.Product.Type)
		if !ok {
			d.logger.Warn("invalid option to item",
				slog.String("order", order.ID.String()),
				slog.Int("item", i),
				slog.String("type", string(item.Product.Type)),
			)
			report.Skipped = append(report.Skipped, model.SkippedItem{
				Index:   i,
				Product: item.Product,
				Reason:  fmt.Errorf("%w: %q", domainErrors.ErrInvalidProductType, item.Product.Type),
			})
			continue
		}

		err := h(ctx, sink, order, item)
		var committed *CommittedError
		if errors.As(err, &committed) {
			d.logger.Warn("item fulfilled with warning",
				slog.String("order", order.ID.String()),
				slog.Int("item", i),
				slog.String("type", string(item.Product.Type)),
				slog.String("error", committed.Err.Error()),
			)
			report.Fulfilled = append(report.Fulfilled, model.FulfilledItem{Index: i, Product: item.Product, Warning: committed.Err})
			continue
		}
		if err != nil {
			d.logger.Error("fulfill item failed",
				slog.String("order", order.ID.String()),
				slog.Int("item", i),
				slog.String("type", string(item.Product.Type)),
				slog.String("error", err.Error()),
			)
			report.Skipped = append(report.Skipped, model.SkippedItem{Index: i, Product: item.Product, Reason: err})
			continue
		}
		report.Fulfilled = append(report.Fulfilled, model.FulfilledItem{Index: i, Product: item.Product})
	}

	return report
}

// CommittedError is returned by a handler whose item already took effect
// before a later step failed. The item is reported fulfilled with a warning.
type CommittedError struct {
	Err error
}

// Committed wraps err as a CommittedError.
func Committed(err error) error {
	return &CommittedError{Err: err}
}

func (e *CommittedError) Error() string {
	return "fulfilled with warning: " + e.Err.Error()
}

func (e *CommittedError) Unwrap() error {
	return e.Err
}

// orderSink stamps effects lacking an order reference.
type orderSink struct {
	orderID uuid.UUID
	next    model.EffectSink
}

func (s orderSink) Emit(ctx context.Context, effect model.Effect) error {
	if effect.OrderID == uuid.Nil {
		effect.OrderID = s.orderID
	}
	return s.next.Emit(ctx, effect)
}
