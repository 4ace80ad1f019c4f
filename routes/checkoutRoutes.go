package routes

import (
	"github.com/craftmint/craftmint-api/controllers"
	"github.com/craftmint/craftmint-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CheckoutRoutes(server *gin.Engine) {
	checkout := server.Group("/checkout", middlewares.RequireAuth())
	{
		checkout.POST("/order", controllers.CreatePaymentOrder)
		checkout.POST("/verify", controllers.VerifyPayment)
		checkout.GET("/orders", controllers.GetMyOrders)
	}
}
