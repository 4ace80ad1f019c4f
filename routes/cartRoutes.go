package routes

import (
	"github.com/craftmint/craftmint-api/controllers"
	"github.com/craftmint/craftmint-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.CreateCartItem)
		cart.PATCH("/:itemId/quantity", controllers.UpdateCartItemQuantity)
		cart.PUT("/:itemId/customization", controllers.UpdateCustomization)
		cart.DELETE("/:itemId", controllers.RemoveCartItem)
	}
}
