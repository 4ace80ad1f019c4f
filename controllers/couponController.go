package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/craftmint/craftmint-api/initializers"
	"github.com/craftmint/craftmint-api/models"
	"github.com/craftmint/craftmint-api/pricing"
	"github.com/gin-gonic/gin"
)

func GetCoupons(ctx *gin.Context) {
	var coupons []models.Coupon
	if err := initializers.DB.Find(&coupons).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch coupons")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": coupons})
}

func CreateCoupon(ctx *gin.Context) {
	var coupon models.Coupon
	if err := ctx.ShouldBindJSON(&coupon); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if coupon.Discount < 0 || coupon.Discount > 100 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Discount must be between 0 and 100")
		return
	}

	if err := initializers.DB.Create(&coupon).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create coupon")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Coupon created", "id": coupon.ID})
}

func DeleteCoupon(ctx *gin.Context) {
	couponId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse coupon id")
		return
	}

	if result := initializers.DB.Delete(&models.Coupon{}, couponId); result.Error != nil {
		log.Println("Delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to delete coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Coupon deleted"})
}

// ApplyCoupon prices a coupon against a subtotal. It performs no
// usage-count decrement; evaluation is pure and repeatable.
func ApplyCoupon(ctx *gin.Context) {
	var body struct {
		Code     string  `json:"code" binding:"required"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	var catalog []models.Coupon
	if err := initializers.DB.Find(&catalog).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch coupons")
		return
	}

	result, err := pricing.EvaluateCoupon(catalog, body.Code, body.Subtotal, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrCouponExpired):
			sendErrorResponse(ctx, http.StatusGone, "This coupon has expired")
		default:
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid coupon code")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "data": result})
}
