package main

import (
	"time"

	"github.com/craftmint/craftmint-api/initializers"
	"github.com/craftmint/craftmint-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://www.craftmint.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.CatalogRoutes(server)
	routes.CartRoutes(server)
	routes.AddressRoutes(server)
	routes.CouponRoutes(server)
	routes.CheckoutRoutes(server)
	routes.PrintOrderRoutes(server)
	routes.ReportRoutes(server)
	server.Run()
}
