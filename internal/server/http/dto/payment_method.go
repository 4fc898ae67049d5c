package dto

import "time"

// PaymentMethodRequest carries a card number to register.
type PaymentMethodRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
}

// PaymentMethodResponse exposes the opaque code and display data of a stored card.
type PaymentMethodResponse struct {
	Code      string    `json:"code"`
	Brand     string    `json:"brand"`
	Last4     string    `json:"last4"`
	CreatedAt time.Time `json:"created_at"`
}
