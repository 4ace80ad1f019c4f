package models

import "gorm.io/gorm"

// Product price 0 is the sentinel for a customizable item: its real
// price is derived from the customization text, not the catalog.
type Product struct {
	gorm.Model
	Brand         string  `json:"brand"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Off           float64 `json:"off"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"imageUrl"`
}

func (p Product) Customizable() bool {
	return p.Price == 0
}
