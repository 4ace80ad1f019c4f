package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckoutIntent snapshots a validated, gateway-authorized checkout
// between the two payment phases. The final order is assembled from
// this snapshot, never from the live cart, so the persisted total
// always matches the amount the gateway captured even if the cart or
// coupon changed in another session meanwhile.
type CheckoutIntent struct {
	gorm.Model
	Receipt        string         `json:"receipt" gorm:"uniqueIndex;size:64"`
	Phone          string         `json:"phone"`
	GatewayOrderID string         `json:"gatewayOrderId"`
	Amount         int64          `json:"amount"`
	OrderSnapshot  datatypes.JSON `json:"orderSnapshot"`
	CartItemIDs    datatypes.JSON `json:"cartItemIds"`
}
