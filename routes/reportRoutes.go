package routes

import (
	"github.com/craftmint/craftmint-api/controllers"
	"github.com/craftmint/craftmint-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ReportRoutes(server *gin.Engine) {
	reports := server.Group("/reports", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		reports.GET("/transactions", controllers.GetTransactions)
		reports.GET("/orders", controllers.GetOrderReport)
		reports.GET("/invoice/:source/:orderId", controllers.GetInvoice)
		reports.GET("/open-count", controllers.GetOpenOrderCount)
		reports.PATCH("/orders/:orderId/status", controllers.UpdateOrderStatus)
	}
}
