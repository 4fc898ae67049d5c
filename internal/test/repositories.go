package test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
)

// PaymentMethodRepositoryStub is an in-memory card directory.
type PaymentMethodRepositoryStub struct {
	mu      sync.Mutex
	Methods map[string]model.PaymentMethod
	Err     error
}

// Create stores method unless the code is known.
func (s *PaymentMethodRepositoryStub) Create(ctx context.Context, method model.PaymentMethod) (*model.PaymentMethod, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Methods == nil {
		s.Methods = make(map[string]model.PaymentMethod)
	}
	if existing, ok := s.Methods[method.Code]; ok {
		return &existing, false, nil
	}
	s.Methods[method.Code] = method
	return &method, true, nil
}

// FetchByHashed returns stored method.
func (s *PaymentMethodRepositoryStub) FetchByHashed(ctx context.Context, code string) (*model.PaymentMethod, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	method, ok := s.Methods[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &method, nil
}

// EffectJournalStub records appended effects.
type EffectJournalStub struct {
	mu       sync.Mutex
	Effects  []model.Effect
	AppendFn func(context.Context, []model.Effect) error
}

// Append stores effects or delegates to override.
func (s *EffectJournalStub) Append(ctx context.Context, effects []model.Effect) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, effects)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Effects = append(s.Effects, effects...)
	return nil
}

// ListByOrder filters stored effects by order.
func (s *EffectJournalStub) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Effect
	for _, e := range s.Effects {
		if e.OrderID == orderID {
			result = append(result, e)
		}
	}
	return result, nil
}
