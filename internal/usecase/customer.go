package usecase

import (
	"context"

	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/domain/repository"
	pkgAuth "github.com/polkiloo/orderflow/internal/pkg/auth"
)

// CustomerUseCase handles customer registration and token management.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	tokens    pkgAuth.Strategy
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(customers repository.CustomerRepository, strategy pkgAuth.Strategy) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, tokens: strategy}
}

// Register creates a customer with inactive membership and returns its bearer token.
func (u *CustomerUseCase) Register(ctx context.Context) (*model.Customer, string, error) {
	customer, err := u.customers.Create(ctx)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(customer.ID)
	if err != nil {
		return nil, "", err
	}

	return customer, token, nil
}

// ParseToken extracts customer ID from provided token.
func (u *CustomerUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches customer by identifier.
func (u *CustomerUseCase) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return u.customers.GetByID(ctx, id)
}
