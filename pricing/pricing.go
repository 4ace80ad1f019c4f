package pricing

import (
	"strings"
	"unicode"

	"github.com/craftmint/craftmint-api/models"
)

// Per non-whitespace character rates for the three text fields.
const (
	bigTextRate    = 10
	mediumTextRate = 8
	smallTextRate  = 5
)

// FlatDeliveryCharge applies to any non-empty cart.
const FlatDeliveryCharge = 40

func nonWhitespaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// CustomizationCost prices the user-entered text. Whitespace is free
// in every field and special instructions are never priced.
func CustomizationCost(bigText, mediumText, smallText string) float64 {
	return float64(nonWhitespaceLen(bigText)*bigTextRate +
		nonWhitespaceLen(mediumText)*mediumTextRate +
		nonWhitespaceLen(smallText)*smallTextRate)
}

// CustomizationComplete reports whether a customization may be paid
// for: MediumText must be non-empty after trimming.
func CustomizationComplete(c *models.Customization) bool {
	return c != nil && strings.TrimSpace(c.MediumText) != ""
}

// Subtotal sums price*quantity over priced lines. Customizable lines
// carry the price sentinel 0 and contribute through CustomizationTotal
// instead.
func Subtotal(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Savings is the catalog discount already baked into line prices.
func Savings(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		if it.OriginalPrice > it.Price {
			total += (it.OriginalPrice - it.Price) * float64(it.Quantity)
		}
	}
	return total
}

func DeliveryCharge(itemCount int) float64 {
	if itemCount == 0 {
		return 0
	}
	return FlatDeliveryCharge
}

// CustomizationTotal sums customization cost * quantity over
// customizable lines that carry a customization.
func CustomizationTotal(items []models.CartItem) float64 {
	var total float64
	for _, it := range items {
		if it.Customizable() && it.Customization != nil {
			total += it.Customization.Cost * float64(it.Quantity)
		}
	}
	return total
}

func GrandTotal(subtotal, deliveryCharge, customizationCost, discountAmount float64) float64 {
	return subtotal + deliveryCharge + customizationCost - discountAmount
}
