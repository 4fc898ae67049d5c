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

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	products := make([]model.Product, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, model.NewProduct(p.Name, model.ProductType(p.Type)))
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentCustomerID(c), usecase.OrderRequest{
		Zipcode:  req.Zipcode,
		Products: products,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidProduct):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentCustomerID(c), orderID)
	if err != nil {
		c.Status(orderLookupStatus(err))
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentCustomerID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Effects handles GET /api/orders/:id/effects.
func (h *OrderHandler) Effects(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	effects, err := h.facade.Effects(c.Request.Context(), CurrentCustomerID(c), orderID)
	if err != nil {
		c.Status(orderLookupStatus(err))
		return
	}
	if len(effects) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.EffectResponse, 0, len(effects))
	for _, e := range effects {
		response = append(response, dto.EffectResponse{
			Kind:      string(e.Kind),
			Message:   e.String(),
			Title:     e.Title,
			Body:      e.Body,
			Percent:   e.Percent,
			Active:    e.Active,
			EmittedAt: e.EmittedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

func orderLookupStatus(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			Name:  item.Product.Name,
			Type:  string(item.Product.Type),
			Total: item.Total(),
		})
	}

	resp := dto.OrderResponse{
		ID:        order.ID.String(),
		Zipcode:   order.Address.Zipcode,
		Items:     items,
		Total:     order.TotalAmount(),
		Closed:    order.IsClosed(),
		ClosedAt:  order.ClosedAt,
		CreatedAt: order.CreatedAt,
	}
	if order.Customer != nil {
		resp.CustomerID = order.Customer.ID
	}
	return resp
}
