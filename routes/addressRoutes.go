package routes

import (
	"github.com/craftmint/craftmint-api/controllers"
	"github.com/craftmint/craftmint-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AddressRoutes(server *gin.Engine) {
	addresses := server.Group("/addresses", middlewares.RequireAuth())
	{
		addresses.GET("", controllers.GetAddresses)
		addresses.POST("", controllers.CreateAddress)
		addresses.PUT("/:id", controllers.UpdateAddress)
		addresses.DELETE("/:id", controllers.DeleteAddress)
	}
}
