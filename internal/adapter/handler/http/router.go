package http

import (
	"github.com/gin-gonic/gin"
	"github.com/pequenoleitor/ordercore/internal/adapter/config"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	webhookHandler *WebhookHandler,
	adminHandler *AdminHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.POST("/webhooks/payments", webhookHandler.HandleNotification)

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService))
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByUser)
			orders.GET("/:number", orderHandler.GetOrder)
			orders.POST("/:number/charge", paymentHandler.CreateCharge)
			orders.POST("/:number/payment/refresh", paymentHandler.RefreshPayment)
		}

		admin := api.Group("/admin")
		{
			admin.Use(authCheck(tokenService), adminCheck())
			admin.GET("/orders", adminHandler.ListOrders)
			admin.PATCH("/orders/:number/status", adminHandler.UpdateOrderStatus)
			admin.PATCH("/orders/:number/tracking", adminHandler.SetTrackingCode)
			admin.DELETE("/orders/:number", adminHandler.DeleteOrder)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
