package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/craftmint/craftmint-api/initializers"
	"github.com/craftmint/craftmint-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Addresses are keyed sub-objects of the user, mutated one at a time.
// Updates carry the version the client last saw; a stale version is
// rejected instead of silently overwriting another session's edit.

func GetAddresses(ctx *gin.Context) {
	user, err := findUserByPhone(authPhone(ctx))
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	var addresses []models.Address
	if err := initializers.DB.Where("user_id = ?", user.ID).Find(&addresses).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
}

func CreateAddress(ctx *gin.Context) {
	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := findUserByPhone(authPhone(ctx))
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	var count int64
	initializers.DB.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&count)
	if count >= models.MaxAddresses {
		sendErrorResponse(ctx, http.StatusBadRequest, "You can save at most 3 addresses")
		return
	}

	address.UserID = int(user.ID)
	address.Version = 1
	if err := initializers.DB.Create(&address).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save address")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Address saved", "address": address})
}

func UpdateAddress(ctx *gin.Context) {
	addressId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse address id")
		return
	}

	var incoming models.Address
	if err := ctx.ShouldBindJSON(&incoming); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := findUserByPhone(authPhone(ctx))
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	// The version check and bump happen in one statement so two
	// concurrent editors cannot both win.
	result := initializers.DB.Model(&models.Address{}).
		Where("id = ? AND user_id = ? AND version = ?", addressId, user.ID, incoming.Version).
		Updates(map[string]any{
			"name":     incoming.Name,
			"line1":    incoming.Line1,
			"line2":    incoming.Line2,
			"landmark": incoming.Landmark,
			"city":     incoming.City,
			"state":    incoming.State,
			"pincode":  incoming.Pincode,
			"version":  incoming.Version + 1,
		})
	if result.Error != nil {
		log.Println("Update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update address")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusConflict, "Address was modified by another session, reload and retry")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address updated", "version": incoming.Version + 1})
}

func DeleteAddress(ctx *gin.Context) {
	addressId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse address id")
		return
	}

	user, err := findUserByPhone(authPhone(ctx))
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	result := initializers.DB.
		Where("id = ? AND user_id = ?", addressId, user.ID).
		Delete(&models.Address{})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		} else {
			log.Println("Delete error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete address")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address deleted"})
}
