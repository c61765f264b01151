package coupon

import (
	"context"

	"photobooking/internal/domain"
)

// ValidatorClient talks to the external coupon validator. The validity
// decision (expiry, usage caps, min purchase) is entirely the validator's;
// this module only relays the verdict.
type ValidatorClient interface {
	Validate(ctx context.Context, code string, totalAmount int64) (*domain.CouponVerdict, error)
	Suggest(ctx context.Context, totalAmount int64) ([]domain.CouponDescriptor, error)
}

// DraftAccess is the slice of the draft store the protocol mutates.
type DraftAccess interface {
	Get(ctx context.Context, id string) (*domain.Draft, error)
	SetCoupon(ctx context.Context, id, code string, discount int64) (*domain.Draft, error)
	ClearCoupon(ctx context.Context, id string) (*domain.Draft, error)
}
