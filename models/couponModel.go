package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon codes are matched case-insensitively against Name.
type Coupon struct {
	gorm.Model
	Name     string    `json:"name" gorm:"uniqueIndex" binding:"required"`
	Discount float64   `json:"discount"`
	Expiry   time.Time `json:"expiry"`
	Limit    int       `json:"limit"`
	Public   bool      `json:"public"`
}
