package pricing

import (
	"errors"
	"strings"
	"time"

	"github.com/craftmint/craftmint-api/models"
)

var (
	ErrInvalidCoupon = errors.New("invalid coupon")
	ErrCouponExpired = errors.New("coupon expired")
)

type CouponResult struct {
	Code           string  `json:"code"`
	Discount       float64 `json:"discount"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalPrice     float64 `json:"finalPrice"`
}

// EvaluateCoupon resolves a code against the catalog by exact
// case-insensitive name match and prices the discount. It is a pure
// function of its inputs, so re-applying the same coupon to the same
// subtotal yields the same result.
func EvaluateCoupon(catalog []models.Coupon, code string, subtotal float64, now time.Time) (CouponResult, error) {
	for _, c := range catalog {
		if !strings.EqualFold(c.Name, code) {
			continue
		}
		if now.After(c.Expiry) {
			return CouponResult{}, ErrCouponExpired
		}
		amount := subtotal * c.Discount / 100
		return CouponResult{
			Code:           c.Name,
			Discount:       c.Discount,
			DiscountAmount: amount,
			FinalPrice:     subtotal - amount,
		}, nil
	}
	return CouponResult{}, ErrInvalidCoupon
}
