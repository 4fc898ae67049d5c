package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderflow/internal/server/http/handlers"
	"github.com/polkiloo/orderflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CheckoutFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	customerHandler := handlers.NewCustomerHandler(facade)
	methodHandler := handlers.NewPaymentMethodHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	api := engine.Group("/api")
	api.POST("/customers", customerHandler.Register)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/customers/me", customerHandler.Me)
	authed.POST("/payment-methods", methodHandler.Register)
	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.GET("/orders/:id/effects", orderHandler.Effects)
	authed.POST("/orders/:id/payments", paymentHandler.Checkout)
	authed.GET("/orders/:id/payment", paymentHandler.Get)

	return engine
}
