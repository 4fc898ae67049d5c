package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest selects the stored payment method for an order.
type CheckoutRequest struct {
	PaymentMethodCode string `json:"payment_method_code" binding:"required"`
}

// InvoiceResponse describes invoice addresses.
type InvoiceResponse struct {
	BillingZipcode  string `json:"billing_zipcode"`
	ShippingZipcode string `json:"shipping_zipcode"`
}

// PaymentResponse describes a settled payment.
type PaymentResponse struct {
	ID                  string           `json:"id"`
	OrderID             string           `json:"order_id"`
	AuthorizationNumber string           `json:"authorization_number"`
	Amount              decimal.Decimal  `json:"amount"`
	CardBrand           string           `json:"card_brand"`
	CardLast4           string           `json:"card_last4"`
	Invoice             *InvoiceResponse `json:"invoice,omitempty"`
	PaidAt              *time.Time       `json:"paid_at,omitempty"`
}

// FulfilledItemResponse describes a fulfilled order line.
type FulfilledItemResponse struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Warning string `json:"warning,omitempty"`
}

// SkippedItemResponse describes an order line that was not fulfilled.
type SkippedItemResponse struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// CheckoutResponse combines the payment with its fulfillment report.
type CheckoutResponse struct {
	Payment   PaymentResponse         `json:"payment"`
	Fulfilled []FulfilledItemResponse `json:"fulfilled"`
	Skipped   []SkippedItemResponse   `json:"skipped"`
}
