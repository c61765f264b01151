package coupon

import (
	"context"
	"strings"
	"sync"
	"time"

	"photobooking/internal/domain"
	"photobooking/internal/modules/pricing"
)

type Status string

const (
	StatusNone    Status = "none"
	StatusPending Status = "pending"
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// ApplyResult is the protocol's answer to one apply attempt.
type ApplyResult struct {
	Status         Status        `json:"status"`
	Code           string        `json:"code,omitempty"`
	Reason         string        `json:"reason,omitempty"`
	DiscountAmount int64         `json:"discount_amount,omitempty"`
	Draft          *domain.Draft `json:"draft,omitempty"`
}

// draftState is the coupon slice of one draft's state. seq tags each issued
// validation request so a response for a stale (code, subtotal) pair is
// discarded instead of applied.
type draftState struct {
	status Status
	reason string
	seq    uint64
}

// Service orchestrates the coupon protocol: NONE -> PENDING -> VALID|INVALID,
// with removal and invalidation wired synchronously into the draft store.
type Service struct {
	validator ValidatorClient
	store     DraftAccess
	loggerf   func(format string, args ...interface{})

	mu     sync.Mutex
	states map[string]*draftState
}

func NewService(validator ValidatorClient, store DraftAccess, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		validator: validator,
		store:     store,
		loggerf:   loggerf,
		states:    make(map[string]*draftState),
	}
}

// Apply validates a code against the current subtotal. Local rejections
// (empty code, empty cart) never reach the validator. A prior applied coupon
// is cleared when a new attempt starts: the draft must never hold a discount
// whose originating code is not the stored one.
func (s *Service) Apply(ctx context.Context, draftID, code string) (*ApplyResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	subtotal := pricing.SubtotalForCoupon(d.Service, d.Addons)
	if subtotal <= 0 {
		return nil, ErrZeroSubtotal
	}

	if d.Coupon.Code != "" {
		if d, err = s.store.ClearCoupon(ctx, draftID); err != nil {
			return nil, err
		}
	}

	seq := s.issue(draftID)

	verdict, err := s.validator.Validate(ctx, code, subtotal)
	if err != nil {
		s.settle(draftID, seq, StatusNone, "")
		return nil, err
	}

	// Discard responses that no longer match current input: either the user
	// re-applied meanwhile (seq moved) or the discount base changed.
	current, cerr := s.store.Get(ctx, draftID)
	if cerr != nil {
		return nil, cerr
	}
	if !s.isCurrent(draftID, seq) || pricing.SubtotalForCoupon(current.Service, current.Addons) != subtotal {
		s.loggerf("level=info msg=discarding stale coupon verdict draft_id=%s code=%s", draftID, code)
		return &ApplyResult{Status: s.status(draftID), Draft: current}, nil
	}

	if !verdict.Valid {
		s.settle(draftID, seq, StatusInvalid, verdict.Reason)
		return &ApplyResult{Status: StatusInvalid, Code: code, Reason: verdict.Reason, Draft: current}, nil
	}

	canonical := code
	if verdict.Coupon != nil && verdict.Coupon.Code != "" {
		canonical = verdict.Coupon.Code
	}
	updated, err := s.store.SetCoupon(ctx, draftID, canonical, verdict.DiscountAmount)
	if err != nil {
		return nil, err
	}
	s.settle(draftID, seq, StatusValid, "")

	return &ApplyResult{
		Status:         StatusValid,
		Code:           canonical,
		DiscountAmount: verdict.DiscountAmount,
		Draft:          updated,
	}, nil
}

// Remove clears applied state unconditionally.
func (s *Service) Remove(ctx context.Context, draftID string) (*domain.Draft, error) {
	d, err := s.store.ClearCoupon(ctx, draftID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if st, ok := s.states[draftID]; ok {
		st.status = StatusNone
		st.reason = ""
		st.seq++ // invalidate any in-flight validation
	}
	s.mu.Unlock()

	return d, nil
}

// Suggest returns currently-eligible coupons for display. Suppressed once a
// coupon is applied or while there is nothing to discount.
func (s *Service) Suggest(ctx context.Context, draftID string) ([]domain.CouponDescriptor, error) {
	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	subtotal := pricing.SubtotalForCoupon(d.Service, d.Addons)
	if d.Coupon.Code != "" || subtotal <= 0 {
		return []domain.CouponDescriptor{}, nil
	}
	return s.validator.Suggest(ctx, subtotal)
}

// RunSuggestLoop polls suggestions until ctx is cancelled, pushing each batch
// through push. Empty batches are pushed too, so a client showing earlier
// suggestions clears them once nothing is eligible anymore. Fetch failures are
// logged and swallowed: suggestions are a convenience, not a critical path.
func (s *Service) RunSuggestLoop(ctx context.Context, draftID string, interval time.Duration, push func([]domain.CouponDescriptor)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		coupons, err := s.Suggest(ctx, draftID)
		if err != nil {
			s.loggerf("level=warn msg=coupon suggestion fetch failed draft_id=%s err=%v", draftID, err)
		} else {
			push(coupons)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Forget drops protocol state for a destroyed draft.
func (s *Service) Forget(draftID string) {
	s.mu.Lock()
	delete(s.states, draftID)
	s.mu.Unlock()
}

func (s *Service) issue(draftID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[draftID]
	if !ok {
		st = &draftState{status: StatusNone}
		s.states[draftID] = st
	}
	st.seq++
	st.status = StatusPending
	return st.seq
}

func (s *Service) isCurrent(draftID string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[draftID]
	return ok && st.seq == seq
}

func (s *Service) settle(draftID string, seq uint64, status Status, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[draftID]
	if !ok || st.seq != seq {
		return
	}
	st.status = status
	st.reason = reason
}

func (s *Service) status(draftID string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[draftID]; ok {
		return st.status
	}
	return StatusNone
}
