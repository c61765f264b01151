package submission

import (
	"context"
	"io"

	"photobooking/internal/domain"
)

type DraftAccess interface {
	Get(ctx context.Context, id string) (*domain.Draft, error)
	Reset(ctx context.Context, id string) error
}

// StepValidator gates submission on the final step's rules.
type StepValidator interface {
	Validate(ctx context.Context, draftID string, step int) ([]domain.StepError, error)
	Reset(draftID string)
}

// ProofStore streams the stored proof into the upload and disposes of the
// file once the booking is confirmed.
type ProofStore interface {
	Open(relPath string) (io.ReadCloser, error)
	Remove(relPath string) error
}

// CouponCleanup lets the pipeline drop coupon protocol state with the draft.
type CouponCleanup interface {
	Forget(draftID string)
}
