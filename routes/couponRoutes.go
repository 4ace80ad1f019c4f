package routes

import (
	"github.com/craftmint/craftmint-api/controllers"
	"github.com/craftmint/craftmint-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CouponRoutes(server *gin.Engine) {
	coupons := server.Group("/coupons")
	{
		coupons.POST("/apply", middlewares.RequireAuth(), controllers.ApplyCoupon)
		coupons.GET("", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.GetCoupons)
		coupons.POST("", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.CreateCoupon)
		coupons.DELETE("/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.DeleteCoupon)
	}
}
