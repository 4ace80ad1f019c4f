package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Craftmint API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

CATALOG
- GET "/product" - Get all products
- GET "/product/{id}" - Get product by ID
- POST "/product" - Create new product (admin)

CART
- GET "/cart" - Get the cart
- POST "/cart" - Add an item to the cart
- PATCH "/cart/{itemId}/quantity" - Change line quantity
- PUT "/cart/{itemId}/customization" - Edit customization text
- DELETE "/cart/{itemId}" - Remove a line

ADDRESSES
- GET "/addresses" - List delivery addresses
- POST "/addresses" - Add an address (max 3)
- PUT "/addresses/{id}" - Update an address
- DELETE "/addresses/{id}" - Delete an address

COUPONS
- POST "/coupons/apply" - Price a coupon against a subtotal
- GET "/coupons" - List coupons (admin)

CHECKOUT
- POST "/checkout/order" - Open a gateway payment intent
- POST "/checkout/verify" - Verify payment and place the order
- GET "/checkout/orders" - List your orders

PRINT ORDERS
- POST "/print-orders/upload" - Upload design files
- POST "/print-orders" - Submit a custom-print order
- GET "/print-orders" - List your print orders

REPORTS (admin)
- GET "/reports/transactions" - Itemized transaction ledger
- GET "/reports/orders" - Per-order report with paging
- GET "/reports/invoice/{source}/{orderId}" - Printable invoice`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
