package models

import "gorm.io/gorm"

// MaxAddresses caps the number of delivery addresses a user may keep.
const MaxAddresses = 3

type User struct {
	gorm.Model
	Fullname  string    `json:"fullname"`
	Phone     string    `json:"phone" gorm:"uniqueIndex;size:15"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type LoginData struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Address is always a sub-object of a User. Version is bumped on every
// update and checked optimistically so two sessions cannot silently
// overwrite each other.
type Address struct {
	gorm.Model
	UserID   int    `json:"userId"`
	Name     string `json:"name" binding:"required"`
	Line1    string `json:"addressLine1" binding:"required"`
	Line2    string `json:"addressLine2"`
	Landmark string `json:"landmark"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Pincode  string `json:"pincode" binding:"required"`
	Version  int    `json:"version"`
}
