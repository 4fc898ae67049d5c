package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/orderflow/internal/adapter/sink"
	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/fulfillment"
	"github.com/polkiloo/orderflow/internal/pkg/auth"
	"github.com/polkiloo/orderflow/internal/pkg/authnum"
	"github.com/polkiloo/orderflow/internal/storage/memory"
	testhelpers "github.com/polkiloo/orderflow/internal/test"
	"github.com/polkiloo/orderflow/internal/usecase"
)

func newFacade(t *testing.T) (*CheckoutFacade, *sink.Queue, *testhelpers.EffectJournalStub) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := memory.New()
	queue := sink.NewQueue(16)
	journal := &testhelpers.EffectJournalStub{}
	methods := &testhelpers.PaymentMethodRepositoryStub{}

	hasher, err := auth.NewBlake2bHasher("key")
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	dispatcher := fulfillment.NewDispatcher(queue, logger, fulfillment.Options{})

	facade := NewCheckoutFacade(
		usecase.NewCustomerUseCase(store.Customers(), strategy),
		usecase.NewPaymentMethodUseCase(methods, hasher),
		usecase.NewOrderUseCase(store.Customers(), store.Orders(), journal),
		usecase.NewPaymentUseCase(store.Orders(), store.Customers(), store.Payments(), methods, authnum.NewUUIDIssuer(), dispatcher, logger),
		queue,
		journal,
	)
	return facade, queue, journal
}

func TestCheckoutFacadeCustomer(t *testing.T) {
	facade, _, _ := newFacade(t)

	customer, token, err := facade.RegisterCustomer(context.Background())
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	fetched, err := facade.Customer(context.Background(), customer.ID)
	if err != nil || fetched.ID != customer.ID {
		t.Fatalf("unexpected customer lookup %+v %v", fetched, err)
	}

	id, err := facade.ParseToken("anything")
	if err != nil || id != 99 {
		t.Fatalf("unexpected parse result %d %v", id, err)
	}
}

func TestCheckoutFacadeOrderLifecycle(t *testing.T) {
	facade, queue, journal := newFacade(t)
	ctx := context.Background()

	customer, _, err := facade.RegisterCustomer(ctx)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	method, created, err := facade.RegisterPaymentMethod(ctx, testhelpers.RandomCardNumber())
	if err != nil || !created {
		t.Fatalf("register payment method: %v created=%v", err, created)
	}

	order, err := facade.PlaceOrder(ctx, customer.ID, usecase.OrderRequest{Products: []model.Product{
		model.NewProduct("Awesome book", model.ProductTypeBook),
		model.NewProduct("Premium", model.ProductTypeMembership),
	}})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	orders, err := facade.Orders(ctx, customer.ID)
	if err != nil || len(orders) != 1 {
		t.Fatalf("expected one order, got %d (%v)", len(orders), err)
	}

	result, err := facade.Checkout(ctx, customer.ID, order.ID, method.Code)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(result.Report.Fulfilled) != 2 {
		t.Fatalf("unexpected report %+v", result.Report)
	}

	payment, err := facade.Payment(ctx, customer.ID, order.ID)
	if err != nil || payment.ID != result.Payment.ID {
		t.Fatalf("unexpected payment lookup %v", err)
	}

	stored, err := facade.Order(ctx, customer.ID, order.ID)
	if err != nil || !stored.IsClosed() {
		t.Fatalf("expected closed order, got %+v %v", stored, err)
	}

	// book: label and notification, membership: update and notification
	if queue.Len() != 4 {
		t.Fatalf("expected four queued effects, got %d", queue.Len())
	}
	pending := facade.PendingEffects(0)
	if err := facade.RecordEffects(ctx, pending); err != nil {
		t.Fatalf("record effects: %v", err)
	}
	if len(journal.Effects) != 4 {
		t.Fatalf("expected four journaled effects, got %d", len(journal.Effects))
	}

	effects, err := facade.Effects(ctx, customer.ID, order.ID)
	if err != nil || len(effects) != 4 {
		t.Fatalf("expected four effects for order, got %d (%v)", len(effects), err)
	}
}

func TestCheckoutFacadePropagatesErrors(t *testing.T) {
	facade, _, journal := newFacade(t)
	journal.AppendFn = func(context.Context, []model.Effect) error { return errors.New("journal down") }

	if err := facade.RecordEffects(context.Background(), []model.Effect{{Kind: model.EffectVoucher}}); err == nil {
		t.Fatal("expected journal error")
	}
	if _, err := facade.Customer(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := facade.RegisterPaymentMethod(context.Background(), "1234"); !errors.Is(err, domainErrors.ErrInvalidCardNumber) {
		t.Fatalf("expected invalid card, got %v", err)
	}
}
