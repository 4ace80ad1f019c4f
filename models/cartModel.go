package models

import "gorm.io/gorm"

type Cart struct {
	gorm.Model
	Phone string     `json:"phone" gorm:"uniqueIndex;size:15"`
	Items []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

type CartItem struct {
	gorm.Model
	CartID        int            `json:"cartId"`
	ProductId     int            `json:"productId"`
	Name          string         `json:"name"`
	Price         float64        `json:"price"`
	OriginalPrice float64        `json:"originalPrice"`
	Quantity      int            `json:"quantity"`
	ImageURL      string         `json:"imageUrl"`
	Category      string         `json:"category"`
	Off           float64        `json:"off"`
	Customization *Customization `json:"customization,omitempty" gorm:"foreignKey:CartItemID;constraint:OnDelete:CASCADE"`
}

// Customizable reports whether this line's price comes from its
// customization text rather than the catalog (price sentinel 0).
func (ci CartItem) Customizable() bool {
	return ci.Price == 0
}

// Customization holds the user-entered text for a customizable item.
// MediumText is the only mandatory field; Cost is derived from the
// three text fields and stored for display.
type Customization struct {
	gorm.Model
	CartItemID          int     `json:"cartItemId"`
	BigText             string  `json:"bigText"`
	MediumText          string  `json:"mediumText"`
	SmallText           string  `json:"smallText"`
	SpecialInstructions string  `json:"specialInstructions"`
	Cost                float64 `json:"cost"`
}
