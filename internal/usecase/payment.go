package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/domain/repository"
)

// CheckoutResult is the outcome of a successful payment.
type CheckoutResult struct {
	Payment *model.Payment
	Report  model.FulfillmentReport
}

// PaymentUseCase settles orders and triggers their fulfillment.
type PaymentUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	payments  repository.PaymentRepository
	methods   repository.PaymentMethodRepository
	issuer    model.AuthorizationIssuer
	fulfiller model.Fulfiller
	logger    *slog.Logger
	now       func() time.Time

	// locks serialises checkouts per customer so an order is paid at most once per process
	// and concurrent payments never overwrite each other's membership change.
	locks *customerLocks
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	payments repository.PaymentRepository,
	methods repository.PaymentMethodRepository,
	issuer model.AuthorizationIssuer,
	fulfiller model.Fulfiller,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:    orders,
		customers: customers,
		payments:  payments,
		methods:   methods,
		issuer:    issuer,
		fulfiller: fulfiller,
		logger:    logger,
		now:       time.Now,
		locks:     newCustomerLocks(),
	}
}

// Checkout pays the customer's order with a stored payment method, fulfills its items
// and persists the closed order, the customer's membership and the payment.
// Once fulfillment has run the result is persisted even if ctx is cancelled.
func (u *PaymentUseCase) Checkout(ctx context.Context, customerID int64, orderID uuid.UUID, methodCode string) (*CheckoutResult, error) {
	unlock := u.locks.lock(customerID)
	defer unlock()

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Customer == nil || order.Customer.ID != customerID {
		return nil, domainErrors.ErrForbidden
	}

	if existing, err := u.payments.GetByOrder(ctx, orderID); err == nil && existing.IsPaid() {
		return nil, domainErrors.ErrAlreadyPaid
	} else if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	method, err := u.methods.FetchByHashed(ctx, methodCode)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnknownMethod
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payment := model.NewPayment(order, *method)
	report, err := payment.Pay(ctx, u.now(), u.issuer, u.fulfiller)
	if err != nil {
		return nil, err
	}

	persistCtx := context.WithoutCancel(ctx)
	if err := u.orders.Save(persistCtx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	if err := u.customers.Save(persistCtx, order.Customer); err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	if err := u.payments.Save(persistCtx, payment); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}

	u.logger.Info("order paid",
		slog.String("order_id", order.ID.String()),
		slog.String("authorization", payment.AuthorizationNumber),
		slog.String("amount", payment.Amount.String()),
		slog.Int("fulfilled", len(report.Fulfilled)),
		slog.Int("skipped", len(report.Skipped)),
	)

	return &CheckoutResult{Payment: payment, Report: report}, nil
}

// PaymentForOrder returns the payment of the customer's order.
func (u *PaymentUseCase) PaymentForOrder(ctx context.Context, customerID int64, orderID uuid.UUID) (*model.Payment, error) {
	payment, err := u.payments.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment.Order == nil || payment.Order.Customer == nil || payment.Order.Customer.ID != customerID {
		return nil, domainErrors.ErrForbidden
	}
	return payment, nil
}

type customerLock struct {
	mu      sync.Mutex
	holders int
}

// customerLocks hands out one mutex per customer and forgets it once nobody holds or waits on it.
type customerLocks struct {
	mu    sync.Mutex
	locks map[int64]*customerLock
}

func newCustomerLocks() *customerLocks {
	return &customerLocks{locks: make(map[int64]*customerLock)}
}

func (l *customerLocks) lock(customerID int64) func() {
	l.mu.Lock()
	entry, ok := l.locks[customerID]
	if !ok {
		entry = &customerLock{}
		l.locks[customerID] = entry
	}
	entry.holders++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.holders--
		if entry.holders == 0 {
			delete(l.locks, customerID)
		}
		l.mu.Unlock()
	}
}
