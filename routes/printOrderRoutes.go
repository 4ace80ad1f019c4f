package routes

import (
	"github.com/craftmint/craftmint-api/controllers"
	"github.com/craftmint/craftmint-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PrintOrderRoutes(server *gin.Engine) {
	printOrders := server.Group("/print-orders", middlewares.RequireAuth())
	{
		printOrders.POST("/upload", controllers.UploadDesignFiles)
		printOrders.POST("", controllers.CreatePrintOrder)
		printOrders.GET("", controllers.GetMyPrintOrders)
		printOrders.PATCH("/:orderId/status", middlewares.RequireAdmin(), controllers.UpdatePrintOrderStatus)
	}
}
