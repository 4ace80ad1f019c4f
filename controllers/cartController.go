package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/craftmint/craftmint-api/initializers"
	"github.com/craftmint/craftmint-api/models"
	"github.com/craftmint/craftmint-api/pricing"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func cartForPhone(phone string) (models.Cart, error) {
	var cart models.Cart
	err := initializers.DB.Where("phone = ?", phone).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{Phone: phone}
		err = initializers.DB.Create(&cart).Error
	}
	return cart, err
}

func GetCart(ctx *gin.Context) {
	var cart models.Cart
	result := initializers.DB.
		Where("phone = ?", authPhone(ctx)).
		Preload("Items.Customization").
		Preload("Items").
		First(&cart)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"cart":     cart,
		"subtotal": pricing.Subtotal(cart.Items),
		"savings":  pricing.Savings(cart.Items),
	})
}

func CreateCartItem(ctx *gin.Context) {
	var cartItem models.CartItem
	if err := ctx.ShouldBindJSON(&cartItem); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	cart, err := cartForPhone(authPhone(ctx))
	if err != nil {
		log.Println("Cart error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart")
		return
	}
	cartItem.CartID = int(cart.ID)

	var existingCartItem models.CartItem
	err = initializers.DB.
		Where("cart_id = ? AND product_id = ?", cart.ID, cartItem.ProductId).
		First(&existingCartItem).Error

	if err == nil {
		existingCartItem.Quantity += cartItem.Quantity

		if err := initializers.DB.Save(&existingCartItem).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Unable to update cart item quantity.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"id":      existingCartItem.ID,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error: ", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	if err := initializers.DB.Create(&cartItem).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": cartItem.Name + " added to cart",
		"id":      cartItem.ID,
	})
}

func ownedCartItem(ctx *gin.Context) (*models.CartItem, bool) {
	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse item id")
		return nil, false
	}

	cart, err := cartForPhone(authPhone(ctx))
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart")
		return nil, false
	}

	var item models.CartItem
	err = initializers.DB.
		Where("id = ? AND cart_id = ?", itemId, cart.ID).
		Preload("Customization").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		}
		return nil, false
	}
	return &item, true
}

// UpdateCartItemQuantity sets the line quantity; dropping below 1
// removes the line entirely.
func UpdateCartItemQuantity(ctx *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	item, ok := ownedCartItem(ctx)
	if !ok {
		return
	}

	if body.Quantity < 1 {
		if err := initializers.DB.Select("Customization").Delete(item).Error; err != nil {
			log.Println("Delete error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": item.Name + " removed from cart"})
		return
	}

	item.Quantity = body.Quantity
	if err := initializers.DB.Save(item).Error; err != nil {
		log.Println("Update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update quantity")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Quantity updated", "quantity": item.Quantity})
}

// UpdateCustomization replaces the customization text on a
// customizable line and recomputes its cost server-side.
func UpdateCustomization(ctx *gin.Context) {
	var body struct {
		BigText             string `json:"bigText"`
		MediumText          string `json:"mediumText"`
		SmallText           string `json:"smallText"`
		SpecialInstructions string `json:"specialInstructions"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	item, ok := ownedCartItem(ctx)
	if !ok {
		return
	}

	if !item.Customizable() {
		sendErrorResponse(ctx, http.StatusBadRequest, "This item is not customizable")
		return
	}

	cost := pricing.CustomizationCost(body.BigText, body.MediumText, body.SmallText)

	customization := item.Customization
	if customization == nil {
		customization = &models.Customization{CartItemID: int(item.ID)}
	}
	customization.BigText = body.BigText
	customization.MediumText = body.MediumText
	customization.SmallText = body.SmallText
	customization.SpecialInstructions = body.SpecialInstructions
	customization.Cost = cost

	if err := initializers.DB.Save(customization).Error; err != nil {
		log.Println("Save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save customization")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  "Customization saved",
		"cost":     cost,
		"complete": pricing.CustomizationComplete(customization),
	})
}

func RemoveCartItem(ctx *gin.Context) {
	item, ok := ownedCartItem(ctx)
	if !ok {
		return
	}

	if err := initializers.DB.Select("Customization").Delete(item).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": item.Name + " removed from cart"})
}
