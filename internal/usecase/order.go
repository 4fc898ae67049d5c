package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/domain/repository"
)

// OrderRequest describes an order to place.
type OrderRequest struct {
	Zipcode  string
	Products []model.Product
}

// OrderUseCase encapsulates order placement and lookup.
type OrderUseCase struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	journal   repository.EffectJournal
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(customers repository.CustomerRepository, orders repository.OrderRepository, journal repository.EffectJournal) *OrderUseCase {
	return &OrderUseCase{customers: customers, orders: orders, journal: journal}
}

// Place creates an open order for the customer. Product tags are not checked here:
// unknown tags are reported at fulfillment time.
func (u *OrderUseCase) Place(ctx context.Context, customerID int64, req OrderRequest) (*model.Order, error) {
	products := make([]model.Product, 0, len(req.Products))
	for _, p := range req.Products {
		name := strings.TrimSpace(p.Name)
		productType := model.ProductType(strings.ToLower(strings.TrimSpace(string(p.Type))))
		if name == "" || productType == "" {
			return nil, domainErrors.ErrInvalidProduct
		}
		products = append(products, model.NewProduct(name, productType))
	}

	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var opts []model.OrderOption
	if zipcode := strings.TrimSpace(req.Zipcode); zipcode != "" {
		opts = append(opts, model.WithAddress(model.Address{Zipcode: zipcode}))
	}

	order := model.NewOrder(customer, opts...)
	for _, p := range products {
		order.AddProduct(p)
	}

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns the order if it belongs to the customer.
func (u *OrderUseCase) Get(ctx context.Context, customerID int64, orderID uuid.UUID) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Customer == nil || order.Customer.ID != customerID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByCustomer returns customer orders, newest first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]*model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// Effects returns journaled fulfillment effects of the customer's order.
func (u *OrderUseCase) Effects(ctx context.Context, customerID int64, orderID uuid.UUID) ([]model.Effect, error) {
	if _, err := u.Get(ctx, customerID, orderID); err != nil {
		return nil, err
	}
	return u.journal.ListByOrder(ctx, orderID)
}
