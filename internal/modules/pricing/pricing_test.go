package pricing

import (
	"testing"

	"photobooking/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTotal_FullBreakdown(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Wedding Premium", BasePrice: 500000, DiscountValue: 50000}
	sels := map[int64]domain.AddonSelection{
		7: {AddonID: 7, Name: "Extra album", Quantity: 2, PriceAtBooking: 100000},
	}

	// 500000 - 50000 + 2*100000 = 650000; coupon takes it to 575000.
	assert.Equal(t, int64(650000), SubtotalForCoupon(svc, sels))
	assert.Equal(t, int64(575000), Total(svc, sels, 75000))
}

func TestTotal_ClampsAtZero(t *testing.T) {
	svc := &domain.Service{ID: 1, BasePrice: 500000, DiscountValue: 50000}
	sels := map[int64]domain.AddonSelection{
		7: {AddonID: 7, Quantity: 2, PriceAtBooking: 100000},
	}

	// Coupon discount exceeds the subtotal; the order never goes negative.
	assert.Equal(t, int64(0), Total(svc, sels, 700000))
}

func TestTotal_NoService(t *testing.T) {
	assert.Equal(t, int64(0), BasePrice(nil))
	assert.Equal(t, int64(0), BaseDiscount(nil))
	assert.Equal(t, int64(0), Total(nil, nil, 0))
	assert.Equal(t, int64(0), SubtotalForCoupon(nil, nil))
}

func TestAddonsTotal(t *testing.T) {
	sels := map[int64]domain.AddonSelection{
		1: {AddonID: 1, Quantity: 3, PriceAtBooking: 25000},
		2: {AddonID: 2, Quantity: 1, PriceAtBooking: 150000},
	}
	assert.Equal(t, int64(225000), AddonsTotal(sels))
	assert.Equal(t, int64(0), AddonsTotal(nil))
}

func TestCouponDiscount_OnlyWhenValid(t *testing.T) {
	assert.Equal(t, int64(0), CouponDiscount(nil))
	assert.Equal(t, int64(0), CouponDiscount(&domain.CouponVerdict{Valid: false, Reason: "expired", DiscountAmount: 5000}))
	assert.Equal(t, int64(5000), CouponDiscount(&domain.CouponVerdict{Valid: true, DiscountAmount: 5000}))
}

func TestRemainingBalance_NotClamped(t *testing.T) {
	assert.Equal(t, int64(400000), RemainingBalance(500000, 100000))
	// Overpayment stays negative; it is displayed as-is.
	assert.Equal(t, int64(-100000), RemainingBalance(500000, 600000))
}

func TestBreakdown_Consistent(t *testing.T) {
	svc := &domain.Service{BasePrice: 300000, DiscountValue: 30000}
	sels := map[int64]domain.AddonSelection{
		4: {AddonID: 4, Quantity: 1, PriceAtBooking: 50000},
	}

	b := Breakdown(svc, sels, 20000)

	assert.Equal(t, int64(300000), b.ServiceBasePrice)
	assert.Equal(t, int64(30000), b.BaseDiscount)
	assert.Equal(t, int64(50000), b.AddonsTotal)
	assert.Equal(t, int64(20000), b.CouponDiscount)
	assert.Equal(t, int64(300000), b.TotalPrice)
}
