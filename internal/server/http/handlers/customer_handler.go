package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderflow/internal/domain/errors"
	"github.com/polkiloo/orderflow/internal/domain/model"
	"github.com/polkiloo/orderflow/internal/server/http/dto"
	"github.com/polkiloo/orderflow/internal/server/http/middleware"
)

// CustomerHandler processes customer registration and profile.
type CustomerHandler struct {
	facade CustomerFacade
}

// NewCustomerHandler creates CustomerHandler instance.
func NewCustomerHandler(facade CustomerFacade) *CustomerHandler {
	return &CustomerHandler{facade: facade}
}

// Register handles POST /api/customers.
func (h *CustomerHandler) Register(c *gin.Context) {
	customer, token, err := h.facade.RegisterCustomer(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// Me handles GET /api/customers/me.
func (h *CustomerHandler) Me(c *gin.Context) {
	customer, err := h.facade.Customer(c.Request.Context(), CurrentCustomerID(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

func toCustomerResponse(customer *model.Customer) dto.CustomerResponse {
	resp := dto.CustomerResponse{ID: customer.ID, CreatedAt: customer.CreatedAt}
	if customer.Membership != nil {
		resp.MembershipActive = customer.Membership.Status
	}
	return resp
}
