package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
)

type recordingSink struct {
	effects []Effect
	err     error
}

func (s *recordingSink) Emit(_ context.Context, effect Effect) error {
	s.effects = append(s.effects, effect)
	return s.err
}

type fixedIssuer struct {
	next  string
	calls int
}

func (i *fixedIssuer) Next() string {
	i.calls++
	return i.next
}

type countingFulfiller struct {
	calls  int
	orders []*Order
}

func (f *countingFulfiller) Fulfill(_ context.Context, order *Order) FulfillmentReport {
	f.calls++
	f.orders = append(f.orders, order)
	report := FulfillmentReport{}
	for i, item := range order.Items {
		report.Fulfilled = append(report.Fulfilled, FulfilledItem{Index: i, Product: item.Product})
	}
	return report
}

func TestProductTypeKnown(t *testing.T) {
	cases := []struct {
		tag   ProductType
		known bool
	}{
		{ProductTypePhysical, true},
		{ProductTypeBook, true},
		{ProductTypeDigital, true},
		{ProductTypeMembership, true},
		{ProductType("gift-card"), false},
		{ProductType(""), false},
	}
	for _, tc := range cases {
		t.Run(string(tc.tag), func(t *testing.T) {
			assert.Equal(t, tc.known, tc.tag.Known())
		})
	}
}

func TestNewOrderDefaults(t *testing.T) {
	customer := NewCustomer(1)
	order := NewOrder(customer)

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Same(t, customer, order.Customer)
	assert.Equal(t, DefaultAddress, order.Address)
	assert.Empty(t, order.Items)
	assert.False(t, order.IsClosed())
}

func TestNewOrderOptions(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	order := NewOrder(NewCustomer(1), WithID(id), WithAddress(Address{Zipcode: "01001-000"}), WithCreatedAt(created))

	assert.Equal(t, id, order.ID)
	assert.Equal(t, "01001-000", order.Address.Zipcode)
	assert.Equal(t, created, order.CreatedAt)
}

func TestOrderAddProductKeepsOrderAndBackReference(t *testing.T) {
	order := NewOrder(NewCustomer(1))
	order.AddProduct(NewProduct("a", ProductTypeBook))
	order.AddProduct(NewProduct("b", ProductTypeDigital))

	require.Len(t, order.Items, 2)
	assert.Equal(t, "a", order.Items[0].Product.Name)
	assert.Equal(t, "b", order.Items[1].Product.Name)
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
	}
}

func TestOrderTotalAmount(t *testing.T) {
	order := NewOrder(NewCustomer(1))
	assert.True(t, order.TotalAmount().Equal(decimal.Zero), "empty order totals zero")

	for n := 1; n <= 4; n++ {
		order.AddProduct(NewProduct("p", ProductTypePhysical))
		expected := decimal.Zero
		for _, item := range order.Items {
			expected = expected.Add(item.Total())
		}
		assert.True(t, order.TotalAmount().Equal(expected), "total for %d items", n)
	}
	assert.Equal(t, "40", order.TotalAmount().String())
}

func TestOrderCloseOverwrites(t *testing.T) {
	order := NewOrder(NewCustomer(1))
	first := time.Unix(100, 0)
	second := time.Unix(200, 0)

	order.Close(first)
	require.True(t, order.IsClosed())
	assert.Equal(t, first, *order.ClosedAt)

	order.Close(second)
	assert.Equal(t, second, *order.ClosedAt)
}

func TestOrderGenerateShippingLabel(t *testing.T) {
	order := NewOrder(NewCustomer(1))
	sink := &recordingSink{}

	require.NoError(t, order.GenerateShippingLabel(context.Background(), sink))
	require.Len(t, sink.effects, 1)
	assert.Equal(t, EffectShippingLabel, sink.effects[0].Kind)
	assert.Equal(t, order.ID, sink.effects[0].OrderID)
	assert.False(t, sink.effects[0].EmittedAt.IsZero())
}

func TestOrderCloneIsDeep(t *testing.T) {
	order := NewOrder(NewCustomer(3))
	order.AddProduct(NewProduct("a", ProductTypeMembership))
	order.Close(time.Unix(10, 0))

	clone := order.Clone()
	clone.Customer.Membership.Status = true
	clone.Items[0].Product.Name = "changed"
	*clone.ClosedAt = time.Unix(20, 0)

	assert.False(t, order.Customer.Membership.Status)
	assert.Equal(t, "a", order.Items[0].Product.Name)
	assert.Equal(t, time.Unix(10, 0), *order.ClosedAt)

	var nilOrder *Order
	assert.Nil(t, nilOrder.Clone())
}

func TestMembershipUpdate(t *testing.T) {
	customer := NewCustomer(1)
	sink := &recordingSink{}
	require.False(t, customer.Membership.Status)

	require.NoError(t, customer.Membership.Update(context.Background(), true, sink))
	assert.True(t, customer.Membership.Status)
	require.NoError(t, customer.Membership.Update(context.Background(), false, sink))
	assert.False(t, customer.Membership.Status)

	require.Len(t, sink.effects, 2)
	assert.Equal(t, "membership active(true)", sink.effects[0].String())
	assert.Equal(t, "membership active(false)", sink.effects[1].String())
}

func TestNotificationAndVoucher(t *testing.T) {
	orderID := uuid.New()
	sink := &recordingSink{}

	require.NoError(t, NewNotification("Book", "Buy Book Notification").Send(context.Background(), orderID, sink))
	require.NoError(t, NewVoucher(10).Generate(context.Background(), orderID, sink))

	require.Len(t, sink.effects, 2)
	assert.Equal(t, Effect{OrderID: orderID, Kind: EffectNotification, Title: "Book", Body: "Buy Book Notification", EmittedAt: sink.effects[0].EmittedAt}, sink.effects[0])
	assert.Equal(t, 10, sink.effects[1].Percent)
	assert.Equal(t, "generate discount 10%", sink.effects[1].String())
}

func TestEmitPropagatesSinkError(t *testing.T) {
	boom := errors.New("boom")
	sink := &recordingSink{err: boom}
	err := NewOrder(NewCustomer(1)).GenerateShippingLabel(context.Background(), sink)
	assert.ErrorIs(t, err, boom)
}

func TestEffectSinkFunc(t *testing.T) {
	var got Effect
	sink := EffectSinkFunc(func(_ context.Context, e Effect) error {
		got = e
		return nil
	})
	require.NoError(t, sink.Emit(context.Background(), Effect{Kind: EffectVoucher, Percent: 5}))
	assert.Equal(t, 5, got.Percent)
}

func TestPaymentPay(t *testing.T) {
	customer := NewCustomer(1)
	order := NewOrder(customer, WithAddress(Address{Zipcode: "12345"}))
	order.AddProduct(NewProduct("book", ProductTypeBook))
	order.AddProduct(NewProduct("ebook", ProductTypeDigital))
	payment := NewPayment(order, PaymentMethod{Code: "code"})
	issuer := &fixedIssuer{next: "auth-1"}
	fulfiller := &countingFulfiller{}
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	require.False(t, payment.IsPaid())
	report, err := payment.Pay(context.Background(), at, issuer, fulfiller)
	require.NoError(t, err)

	assert.True(t, payment.IsPaid())
	assert.Equal(t, at, *payment.PaidAt)
	assert.Equal(t, at, *order.ClosedAt)
	assert.Equal(t, "auth-1", payment.AuthorizationNumber)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(20)))
	require.NotNil(t, payment.Invoice)
	assert.Equal(t, order.Address, payment.Invoice.BillingAddress)
	assert.Equal(t, order.Address, payment.Invoice.ShippingAddress)
	assert.Equal(t, order.ID, payment.Invoice.OrderID)
	assert.Equal(t, 1, fulfiller.calls)
	assert.Len(t, report.Fulfilled, 2)
}

func TestPaymentPayTwiceFailsWithoutSideEffects(t *testing.T) {
	order := NewOrder(NewCustomer(1))
	order.AddProduct(NewProduct("p", ProductTypePhysical))
	payment := NewPayment(order, PaymentMethod{})
	issuer := &fixedIssuer{next: "a"}
	fulfiller := &countingFulfiller{}
	first := time.Unix(1, 0)

	_, err := payment.Pay(context.Background(), first, issuer, fulfiller)
	require.NoError(t, err)

	_, err = payment.Pay(context.Background(), time.Unix(2, 0), issuer, fulfiller)
	require.ErrorIs(t, err, domainErrors.ErrAlreadyPaid)
	assert.Equal(t, 1, fulfiller.calls)
	assert.Equal(t, 1, issuer.calls)
	assert.Equal(t, first, *payment.PaidAt)
	assert.Equal(t, first, *order.ClosedAt)
}

func TestPaymentPayRejectsClosedOrder(t *testing.T) {
	order := NewOrder(NewCustomer(1))
	order.AddProduct(NewProduct("p", ProductTypePhysical))
	order.Close(time.Unix(1, 0))
	payment := NewPayment(order, PaymentMethod{})
	fulfiller := &countingFulfiller{}

	_, err := payment.Pay(context.Background(), time.Unix(2, 0), &fixedIssuer{}, fulfiller)
	require.ErrorIs(t, err, domainErrors.ErrOrderClosed)
	assert.False(t, payment.IsPaid())
	assert.Zero(t, fulfiller.calls)
}

func TestPaymentPayRejectsEmptyOrder(t *testing.T) {
	payment := NewPayment(NewOrder(NewCustomer(1)), PaymentMethod{})
	fulfiller := &countingFulfiller{}

	_, err := payment.Pay(context.Background(), time.Now(), &fixedIssuer{}, fulfiller)
	require.ErrorIs(t, err, domainErrors.ErrEmptyOrder)
	assert.False(t, payment.IsPaid())
	assert.False(t, payment.Order.IsClosed())
	assert.Zero(t, fulfiller.calls)
	assert.Nil(t, payment.Invoice)
}
