package domain

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// CouponDescriptor mirrors the coupon record exposed by the external validator.
// Usage limits and validity windows are enforced by the validator, not here.
type CouponDescriptor struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue int64        `json:"discount_value"`
	MaxDiscount   *int64       `json:"max_discount,omitempty"`
	MinPurchase   *int64       `json:"min_purchase,omitempty"`
	UsageLimit    *int         `json:"usage_limit,omitempty"`
	UsageCount    int          `json:"usage_count"`
	ValidFrom     *time.Time   `json:"valid_from,omitempty"`
	ValidUntil    *time.Time   `json:"valid_until,omitempty"`
	IsActive      bool         `json:"is_active"`
}

// CouponVerdict is the validator's decision for a (code, amount) pair.
type CouponVerdict struct {
	Valid          bool              `json:"valid"`
	Reason         string            `json:"reason,omitempty"`
	Coupon         *CouponDescriptor `json:"coupon,omitempty"`
	DiscountAmount int64             `json:"discount_amount,omitempty"`
}
