// Package pricing turns a selected service, a set of add-on selections and an
// applied coupon discount into one consistent price breakdown. Everything here
// is pure: malformed or missing inputs reduce to zero contributions, never to
// errors.
package pricing

import "photobooking/internal/domain"

func BasePrice(svc *domain.Service) int64 {
	if svc == nil {
		return 0
	}
	return svc.BasePrice
}

func BaseDiscount(svc *domain.Service) int64 {
	if svc == nil {
		return 0
	}
	return svc.DiscountValue
}

func AddonsTotal(selections map[int64]domain.AddonSelection) int64 {
	var total int64
	for _, sel := range selections {
		total += sel.PriceAtBooking * int64(sel.Quantity)
	}
	return total
}

func CouponDiscount(verdict *domain.CouponVerdict) int64 {
	if verdict == nil || !verdict.Valid {
		return 0
	}
	return verdict.DiscountAmount
}

// SubtotalForCoupon is the amount the external validator discounts against:
// coupons apply after the service base discount, before their own discount.
func SubtotalForCoupon(svc *domain.Service, selections map[int64]domain.AddonSelection) int64 {
	return BasePrice(svc) - BaseDiscount(svc) + AddonsTotal(selections)
}

// Total clamps at zero: a coupon can never make the order negative.
func Total(svc *domain.Service, selections map[int64]domain.AddonSelection, couponDiscount int64) int64 {
	total := BasePrice(svc) - BaseDiscount(svc) + AddonsTotal(selections) - couponDiscount
	if total < 0 {
		return 0
	}
	return total
}

// RemainingBalance may be negative (overpayment). It is informational only and
// is deliberately not clamped.
func RemainingBalance(total, dpAmount int64) int64 {
	return total - dpAmount
}

// Breakdown recomputes the full derived totals block for a draft.
func Breakdown(svc *domain.Service, selections map[int64]domain.AddonSelection, couponDiscount int64) domain.Totals {
	return domain.Totals{
		ServiceBasePrice: BasePrice(svc),
		BaseDiscount:     BaseDiscount(svc),
		AddonsTotal:      AddonsTotal(selections),
		CouponDiscount:   couponDiscount,
		TotalPrice:       Total(svc, selections, couponDiscount),
	}
}
