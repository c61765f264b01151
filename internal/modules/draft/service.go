package draft

import (
	"context"
	"sync"
	"time"

	"photobooking/internal/domain"
	"photobooking/internal/modules/pricing"

	"github.com/google/uuid"
)

// Store owns every configurator draft on this node. All mutation funnels
// through mutate(), which re-derives the totals block and writes the safe
// projection to the durable cache, so the pricing invariant holds no matter
// which endpoint triggered the change.
type Store struct {
	cache   CacheRepository
	loggerf func(format string, args ...interface{})

	mu     sync.RWMutex
	drafts map[string]*domain.Draft
}

func NewStore(cache CacheRepository, loggerf func(format string, args ...interface{})) *Store {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Store{
		cache:   cache,
		loggerf: loggerf,
		drafts:  make(map[string]*domain.Draft),
	}
}

func (s *Store) Create(ctx context.Context) (*domain.Draft, error) {
	now := time.Now().UTC()
	d := &domain.Draft{
		ID:          uuid.New().String(),
		Addons:      make(map[int64]domain.AddonSelection),
		CurrentStep: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	d.Totals = pricing.Breakdown(nil, nil, 0)

	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()

	s.persist(ctx, d)
	return cloneDraft(d), nil
}

// Get returns the draft, falling back to the durable cache when this node has
// no in-memory copy (reload after restart). Restored drafts come back without
// coupon state or proof handle by construction.
func (s *Store) Get(ctx context.Context, id string) (*domain.Draft, error) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()
	if ok {
		return cloneDraft(d), nil
	}

	payload, err := s.cache.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrNotFound
	}
	restored, err := restoreDraft(payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Another request may have restored it first; keep whichever is present.
	if existing, ok := s.drafts[id]; ok {
		restored = existing
	} else {
		s.drafts[id] = restored
	}
	s.mu.Unlock()

	return cloneDraft(restored), nil
}

// SelectService snapshots the chosen service into the draft. Switching to a
// different service clears add-ons and coupon: both are service-dependent.
func (s *Store) SelectService(ctx context.Context, id string, svc domain.Service) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		if d.Service == nil || d.Service.ID != svc.ID {
			d.Addons = make(map[int64]domain.AddonSelection)
			d.Coupon = domain.CouponState{}
		}
		snapshot := svc
		d.Service = &snapshot
	})
}

// SetAddon upserts an add-on line; quantity below 1 removes it. Any change to
// the add-on set moves the discount base, so an applied coupon is cleared and
// must be re-applied.
func (s *Store) SetAddon(ctx context.Context, id string, sel domain.AddonSelection) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		if sel.Quantity < 1 {
			delete(d.Addons, sel.AddonID)
		} else {
			d.Addons[sel.AddonID] = sel
		}
		d.Coupon = domain.CouponState{}
	})
}

func (s *Store) SetSchedule(ctx context.Context, id string, sched domain.Schedule) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		d.Schedule = sched
	})
}

func (s *Store) SetContact(ctx context.Context, id string, contact domain.Contact) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		d.Contact = contact
	})
}

func (s *Store) SetDPAmount(ctx context.Context, id string, amount int64) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		d.Payment.DPAmount = amount
	})
}

func (s *Store) SetProof(ctx context.Context, id, path, url string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		d.Payment.ProofPath = path
		d.Payment.ProofURL = url
	})
}

func (s *Store) SetCoupon(ctx context.Context, id, code string, discount int64) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		d.Coupon = domain.CouponState{Code: code, Discount: discount}
	})
}

func (s *Store) ClearCoupon(ctx context.Context, id string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		d.Coupon = domain.CouponState{}
	})
}

func (s *Store) SetCurrentStep(ctx context.Context, id string, step int) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) {
		d.CurrentStep = step
	})
}

// Reset destroys the draft: memory and durable cache. Used on successful
// submission and explicit cancellation.
func (s *Store) Reset(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()

	if err := s.cache.Delete(ctx, id); err != nil {
		s.loggerf("level=error msg=failed to delete draft cache draft_id=%s err=%v", id, err)
		return err
	}
	return nil
}

func (s *Store) mutate(ctx context.Context, id string, fn func(*domain.Draft)) (*domain.Draft, error) {
	s.mu.Lock()
	d, ok := s.drafts[id]
	s.mu.Unlock()
	if !ok {
		// Restore path shares the cache-miss semantics of Get.
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		s.mu.Lock()
		d, ok = s.drafts[id]
		s.mu.Unlock()
		if !ok {
			return nil, ErrNotFound
		}
	}

	s.mu.Lock()
	fn(d)
	d.Totals = pricing.Breakdown(d.Service, d.Addons, d.Coupon.Discount)
	d.UpdatedAt = time.Now().UTC()
	out := cloneDraft(d)
	s.mu.Unlock()

	// Persist from the clone so nothing reads the shared draft unlocked.
	s.persist(ctx, out)
	return out, nil
}

// persist writes the safe projection. A cache write failure does not fail the
// mutation: the in-memory draft stays authoritative for the session.
func (s *Store) persist(ctx context.Context, d *domain.Draft) {
	payload, err := projectDraft(d)
	if err != nil {
		s.loggerf("level=error msg=failed to project draft draft_id=%s err=%v", d.ID, err)
		return
	}
	if err := s.cache.Save(ctx, d.ID, payload); err != nil {
		s.loggerf("level=error msg=failed to persist draft draft_id=%s err=%v", d.ID, err)
	}
}

func cloneDraft(d *domain.Draft) *domain.Draft {
	out := *d
	if d.Service != nil {
		svc := *d.Service
		out.Service = &svc
	}
	out.Addons = make(map[int64]domain.AddonSelection, len(d.Addons))
	for k, v := range d.Addons {
		out.Addons[k] = v
	}
	return &out
}
