package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/server/http/dto"
)

// PaymentMethodHandler manages the card directory endpoints.
type PaymentMethodHandler struct {
	facade PaymentMethodFacade
}

// NewPaymentMethodHandler constructs PaymentMethodHandler.
func NewPaymentMethodHandler(facade PaymentMethodFacade) *PaymentMethodHandler {
	return &PaymentMethodHandler{facade: facade}
}

// Register handles POST /api/payment-methods.
func (h *PaymentMethodHandler) Register(c *gin.Context) {
	var req dto.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	method, created, err := h.facade.RegisterPaymentMethod(c.Request.Context(), req.CardNumber)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCardNumber):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, dto.PaymentMethodResponse{
		Code:      method.Code,
		Brand:     method.Brand,
		Last4:     method.Last4,
		CreatedAt: method.CreatedAt,
	})
}
