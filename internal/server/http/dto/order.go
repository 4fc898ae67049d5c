package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest describes a product line of a new order.
type ProductRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// OrderRequest describes order creation payload.
type OrderRequest struct {
	Zipcode  string           `json:"zipcode,omitempty"`
	Products []ProductRequest `json:"products"`
}

// OrderItemResponse describes an order line.
type OrderItemResponse struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
}

// OrderResponse describes an order.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID int64               `json:"customer_id"`
	Zipcode    string              `json:"zipcode"`
	Items      []OrderItemResponse `json:"items"`
	Total      decimal.Decimal     `json:"total"`
	Closed     bool                `json:"closed"`
	ClosedAt   *time.Time          `json:"closed_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}
