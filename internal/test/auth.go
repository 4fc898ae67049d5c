package test

import (
	"context"

	"github.com/polkiloo/orderflow/internal/domain/model"
	pkgAuth "github.com/polkiloo/orderflow/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(customerID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(customerID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// CustomerFacadeStub simulates customer registration and lookup.
type CustomerFacadeStub struct {
	RegisterFn func(context.Context) (*model.Customer, string, error)
	CustomerFn func(context.Context, int64) (*model.Customer, error)
	ParseFn    func(string) (int64, error)
}

// RegisterCustomer returns a fresh customer and token by default.
func (s CustomerFacadeStub) RegisterCustomer(ctx context.Context) (*model.Customer, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx)
	}
	return model.NewCustomer(1), "token", nil
}

// Customer returns a customer with the requested id by default.
func (s CustomerFacadeStub) Customer(ctx context.Context, customerID int64) (*model.Customer, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, customerID)
	}
	return model.NewCustomer(customerID), nil
}

// ParseToken returns stored identifier for authenticated customer.
func (s CustomerFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
