package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCardNumber  = errors.New("invalid card number")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrInvalidProductType = errors.New("invalid product type")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrAlreadyPaid        = errors.New("payment already paid")
	ErrOrderClosed        = errors.New("order already closed")
	ErrUnknownMethod      = errors.New("unknown payment method")
)
