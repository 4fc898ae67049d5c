package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/storage/memory"
)

func newOrderUseCase(t *testing.T) (*OrderUseCase, *memory.Store, *model.Customer) {
	t.Helper()
	store := memory.New()
	customer, err := store.Customers().Create(context.Background())
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return NewOrderUseCase(store.Customers(), store.Orders(), store.Effects()), store, customer
}

func TestOrderUseCasePlace(t *testing.T) {
	uc, _, customer := newOrderUseCase(t)

	order, err := uc.Place(context.Background(), customer.ID, OrderRequest{
		Products: []model.Product{
			{Name: " Awesome book ", Type: "Book"},
			{Name: "Song", Type: model.ProductTypeDigital},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Address != model.DefaultAddress {
		t.Fatalf("expected default address, got %+v", order.Address)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(order.Items))
	}
	if order.Items[0].Product.Name != "Awesome book" || order.Items[0].Product.Type != model.ProductTypeBook {
		t.Fatalf("unexpected normalized product %+v", order.Items[0].Product)
	}
	if order.IsClosed() {
		t.Fatal("expected new order to be open")
	}

	stored, err := uc.Get(context.Background(), customer.ID, order.ID)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected stored order with two items, got %d", len(stored.Items))
	}
}

func TestOrderUseCasePlaceWithZipcodeAndUnknownType(t *testing.T) {
	uc, _, customer := newOrderUseCase(t)

	order, err := uc.Place(context.Background(), customer.ID, OrderRequest{
		Zipcode:  "12345-000",
		Products: []model.Product{{Name: "Gift card", Type: "giftcard"}},
	})
	if err != nil {
		t.Fatalf("unknown tags must be accepted at placement, got %v", err)
	}
	if order.Address.Zipcode != "12345-000" {
		t.Fatalf("unexpected zipcode %q", order.Address.Zipcode)
	}
}

func TestOrderUseCasePlaceEmptyOrder(t *testing.T) {
	uc, _, customer := newOrderUseCase(t)
	order, err := uc.Place(context.Background(), customer.ID, OrderRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Items) != 0 || !order.TotalAmount().IsZero() {
		t.Fatalf("expected empty order, got %+v", order)
	}
}

func TestOrderUseCasePlaceRejectsInvalidProduct(t *testing.T) {
	uc, _, customer := newOrderUseCase(t)
	for _, p := range []model.Product{{Name: "", Type: model.ProductTypeBook}, {Name: "x", Type: " "}} {
		if _, err := uc.Place(context.Background(), customer.ID, OrderRequest{Products: []model.Product{p}}); !errors.Is(err, domainErrors.ErrInvalidProduct) {
			t.Fatalf("expected invalid product for %+v, got %v", p, err)
		}
	}
}

func TestOrderUseCasePlaceUnknownCustomer(t *testing.T) {
	uc, _, _ := newOrderUseCase(t)
	if _, err := uc.Place(context.Background(), 404, OrderRequest{}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseGetOwnership(t *testing.T) {
	uc, store, customer := newOrderUseCase(t)
	other, _ := store.Customers().Create(context.Background())

	order, err := uc.Place(context.Background(), customer.ID, OrderRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.Get(context.Background(), other.ID, order.ID); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.Get(context.Background(), customer.ID, uuid.New()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseListByCustomer(t *testing.T) {
	uc, _, customer := newOrderUseCase(t)
	for i := 0; i < 3; i++ {
		if _, err := uc.Place(context.Background(), customer.ID, OrderRequest{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	orders, err := uc.ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected three orders, got %d", len(orders))
	}
}

func TestOrderUseCaseEffects(t *testing.T) {
	uc, store, customer := newOrderUseCase(t)
	other, _ := store.Customers().Create(context.Background())
	order, _ := uc.Place(context.Background(), customer.ID, OrderRequest{})

	if err := store.Effects().Append(context.Background(), []model.Effect{{OrderID: order.ID, Kind: model.EffectShippingLabel}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	effects, err := uc.Effects(context.Background(), customer.ID, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(effects) != 1 || effects[0].Kind != model.EffectShippingLabel {
		t.Fatalf("unexpected effects %+v", effects)
	}

	if _, err := uc.Effects(context.Background(), other.ID, order.ID); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
