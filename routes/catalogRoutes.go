package routes

import (
	"github.com/craftmint/craftmint-api/controllers"
	"github.com/craftmint/craftmint-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CatalogRoutes(server *gin.Engine) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)
	server.POST("/product", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.CreateProduct)
}
