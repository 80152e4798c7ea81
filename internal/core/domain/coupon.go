package domain

import "time"

// CouponType selects the discount arithmetic.
type CouponType string

const (
	CouponFlat       CouponType = "flat"
	CouponPercentage CouponType = "percentage"
)

// Coupon is a discount code with an expiry date and a usage budget.
type Coupon struct {
	ID         string     `json:"id" bson:"id"`
	Code       string     `json:"code" bson:"code"`
	Type       CouponType `json:"type" bson:"type"`
	Value      float64    `json:"value" bson:"value"`
	MinOrder   float64    `json:"min_order" bson:"min_order"`
	ExpiryDate time.Time  `json:"expiry_date" bson:"expiry_date"` // end of the stated day, UTC
	UsageLimit int        `json:"usage_limit" bson:"usage_limit"`
	UsedCount  int        `json:"used_count" bson:"used_count"`
	Active     bool       `json:"active" bson:"active"`
}

// Expired reports whether the coupon is past its expiry at the given time.
func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiryDate)
}

// Exhausted reports whether the usage budget is spent.
func (c *Coupon) Exhausted() bool {
	return c.UsedCount >= c.UsageLimit
}

// Discount computes the discount for an order total. The caller has already
// checked expiry, usage, and the minimum order amount.
func (c *Coupon) Discount(total float64) float64 {
	if c.Type == CouponFlat {
		return c.Value
	}
	return total * c.Value / 100
}
