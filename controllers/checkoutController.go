package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/craftmint/craftmint-api/checkout"
	"github.com/craftmint/craftmint-api/initializers"
	"github.com/craftmint/craftmint-api/models"
	"github.com/craftmint/craftmint-api/payments"
	"github.com/craftmint/craftmint-api/utils"
	"github.com/gin-gonic/gin"
)

// mailNotifier sends the confirmation email after a successful
// checkout. Failures are logged, never surfaced.
type mailNotifier struct{}

func (mailNotifier) OrderConfirmed(order *models.Order) {
	var user models.User
	if err := initializers.DB.Where("phone = ?", order.Phone).First(&user).Error; err != nil || user.Email == "" {
		return
	}

	data := utils.OrderEmailData{
		Name:    user.Fullname,
		Message: "Your payment was received and your order is confirmed.",
		OrderID: fmt.Sprint(order.ID),
		Total:   order.TotalPrice,
		LogoURL: os.Getenv("FRONTEND_URL") + "/images/logo.jpg",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := utils.SendEmail(user.Email, "Order Confirmation", data, templatePath); err != nil {
		log.Printf("confirmation mail for order %d: %v", order.ID, err)
	}
}

func newOrchestrator() *checkout.Orchestrator {
	db := initializers.DB
	return checkout.NewOrchestrator(
		payments.NewClientFromEnv(),
		checkout.GormCartStore{DB: db},
		checkout.GormOrderStore{DB: db},
		checkout.GormIntentStore{DB: db},
		checkout.GormAddressStore{DB: db},
		checkout.GormCouponStore{DB: db},
		mailNotifier{},
	)
}

func checkoutSession(ctx *gin.Context, addressID uint, couponCode string) checkout.Session {
	name := ""
	if user, err := findUserByPhone(authPhone(ctx)); err == nil {
		name = user.Fullname
	}
	return checkout.Session{
		Phone:      authPhone(ctx),
		Name:       name,
		AddressID:  addressID,
		CouponCode: couponCode,
	}
}

func respondCheckoutError(ctx *gin.Context, err error) {
	var verr *checkout.ValidationError
	var gerr *checkout.GatewayError
	var perr *checkout.PersistenceError

	switch {
	case errors.As(err, &verr):
		sendErrorResponse(ctx, http.StatusBadRequest, verr.Reason)
	case errors.As(err, &gerr):
		log.Println("Gateway error:", gerr)
		sendErrorResponse(ctx, http.StatusPaymentRequired, "Payment could not be completed")
	case errors.As(err, &perr):
		// Money has moved but no order exists; hand support enough to
		// reconcile manually.
		log.Printf("ORDER NOT PERSISTED payment=%s receipt=%s: %v", perr.PaymentID, perr.Receipt, perr.Err)
		sendJSONResponse(ctx, http.StatusBadGateway, gin.H{
			"message":   "Your payment was received but the order could not be recorded. Please contact support.",
			"paymentId": perr.PaymentID,
		})
	default:
		log.Println("Checkout error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Checkout failed")
	}
}

// CreatePaymentOrder validates the cart and opens the gateway payment
// intent the client-side widget is launched with.
func CreatePaymentOrder(ctx *gin.Context) {
	var body struct {
		AddressID  uint   `json:"addressId" binding:"required"`
		CouponCode string `json:"couponCode"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	attempt := newOrchestrator().NewAttempt(checkoutSession(ctx, body.AddressID, body.CouponCode))
	intent, err := attempt.Begin(ctx.Request.Context())
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "order": intent})
}

// VerifyPayment consumes the widget's signed success callback: verify,
// persist the order snapshotted at CreatePaymentOrder, clear the cart.
func VerifyPayment(ctx *gin.Context) {
	var body checkout.PaymentCallback
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	attempt := newOrchestrator().NewAttempt(checkoutSession(ctx, 0, ""))
	order, err := attempt.Complete(ctx.Request.Context(), body)
	if err != nil {
		respondCheckoutError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": "Order placed successfully.",
		"order":   order,
	})
}

// GetMyOrders lists the caller's online-store orders, newest first.
func GetMyOrders(ctx *gin.Context) {
	var orders []models.Order
	result := initializers.DB.
		Preload("Items").
		Where("phone = ?", authPhone(ctx)).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}
