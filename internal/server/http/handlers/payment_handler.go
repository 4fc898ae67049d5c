package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/server/http/dto"
	"github.com/polkiloo/orderflow/internal/usecase"
)

// PaymentHandler settles orders.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Checkout handles POST /api/orders/:id/payments.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.Checkout(c.Request.Context(), CurrentCustomerID(c), orderID, req.PaymentMethodCode)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyPaid), errors.Is(err, domainErrors.ErrOrderClosed):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrEmptyOrder), errors.Is(err, domainErrors.ErrUnknownMethod):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(orderLookupStatus(err))
		}
		return
	}

	c.JSON(http.StatusOK, toCheckoutResponse(result))
}

// Get handles GET /api/orders/:id/payment.
func (h *PaymentHandler) Get(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, err := h.facade.Payment(c.Request.Context(), CurrentCustomerID(c), orderID)
	if err != nil {
		c.Status(orderLookupStatus(err))
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func toCheckoutResponse(result *usecase.CheckoutResult) dto.CheckoutResponse {
	resp := dto.CheckoutResponse{
		Payment:   toPaymentResponse(result.Payment),
		Fulfilled: make([]dto.FulfilledItemResponse, 0, len(result.Report.Fulfilled)),
		Skipped:   make([]dto.SkippedItemResponse, 0, len(result.Report.Skipped)),
	}
	for _, item := range result.Report.Fulfilled {
		warning := ""
		if item.Warning != nil {
			warning = item.Warning.Error()
		}
		resp.Fulfilled = append(resp.Fulfilled, dto.FulfilledItemResponse{
			Index:   item.Index,
			Name:    item.Product.Name,
			Type:    string(item.Product.Type),
			Warning: warning,
		})
	}
	for _, item := range result.Report.Skipped {
		reason := ""
		if item.Reason != nil {
			reason = item.Reason.Error()
		}
		resp.Skipped = append(resp.Skipped, dto.SkippedItemResponse{
			Index:  item.Index,
			Name:   item.Product.Name,
			Type:   string(item.Product.Type),
			Reason: reason,
		})
	}
	return resp
}

func toPaymentResponse(payment *model.Payment) dto.PaymentResponse {
	resp := dto.PaymentResponse{
		ID:                  payment.ID.String(),
		AuthorizationNumber: payment.AuthorizationNumber,
		Amount:              payment.Amount,
		CardBrand:           payment.Method.Brand,
		CardLast4:           payment.Method.Last4,
		PaidAt:              payment.PaidAt,
	}
	if payment.Order != nil {
		resp.OrderID = payment.Order.ID.String()
	}
	if payment.Invoice != nil {
		resp.Invoice = &dto.InvoiceResponse{
			BillingZipcode:  payment.Invoice.BillingAddress.Zipcode,
			ShippingZipcode: payment.Invoice.ShippingAddress.Zipcode,
		}
	}
	return resp
}
