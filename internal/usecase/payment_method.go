package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/domain/repository"
	pkgAuth "github.com/polkiloo/orderflow/internal/pkg/auth"
)

// PaymentMethodUseCase registers cards in the payment-method directory.
type PaymentMethodUseCase struct {
	methods repository.PaymentMethodRepository
	hasher  pkgAuth.CardHasher
}

// NewPaymentMethodUseCase constructs PaymentMethodUseCase.
func NewPaymentMethodUseCase(methods repository.PaymentMethodRepository, hasher pkgAuth.CardHasher) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{methods: methods, hasher: hasher}
}

// Register stores the card under its hashed code. The raw number is never kept.
// Returns whether the method was newly created.
func (u *PaymentMethodUseCase) Register(ctx context.Context, cardNumber string) (*model.PaymentMethod, bool, error) {
	number := NormalizeCardNumber(cardNumber)
	if !ValidateCardNumber(number) {
		return nil, false, domainErrors.ErrInvalidCardNumber
	}

	code, err := u.hasher.Hash(number)
	if err != nil {
		return nil, false, err
	}

	return u.methods.Create(ctx, model.PaymentMethod{
		Code:  code,
		Brand: CardBrand(number),
		Last4: number[len(number)-4:],
	})
}

// FetchByHashed resolves an opaque code into the stored method.
func (u *PaymentMethodUseCase) FetchByHashed(ctx context.Context, code string) (*model.PaymentMethod, error) {
	return u.methods.FetchByHashed(ctx, code)
}
