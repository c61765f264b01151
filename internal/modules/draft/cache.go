package draft

import (
	"encoding/json"
	"time"

	"photobooking/internal/domain"
	"photobooking/internal/modules/pricing"
)

// cachedDraft is the safe projection written to the durable cache. It carries
// no proof binary/preview, no coupon code or discount, and no derived totals:
// those are recomputed or re-entered, never trusted from storage.
type cachedDraft struct {
	ID          string                          `json:"id"`
	Service     *domain.Service                 `json:"service,omitempty"`
	Addons      map[int64]domain.AddonSelection `json:"addons,omitempty"`
	Schedule    domain.Schedule                 `json:"schedule"`
	Contact     domain.Contact                  `json:"contact"`
	DPAmount    int64                           `json:"dp_amount"`
	CurrentStep int                             `json:"current_step"`
	CreatedAt   time.Time                       `json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

func projectDraft(d *domain.Draft) ([]byte, error) {
	return json.Marshal(cachedDraft{
		ID:          d.ID,
		Service:     d.Service,
		Addons:      d.Addons,
		Schedule:    d.Schedule,
		Contact:     d.Contact,
		DPAmount:    d.Payment.DPAmount,
		CurrentStep: d.CurrentStep,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	})
}

func restoreDraft(payload []byte) (*domain.Draft, error) {
	var c cachedDraft
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, err
	}
	if c.Addons == nil {
		c.Addons = make(map[int64]domain.AddonSelection)
	}
	d := &domain.Draft{
		ID:          c.ID,
		Service:     c.Service,
		Addons:      c.Addons,
		Schedule:    c.Schedule,
		Contact:     c.Contact,
		Payment:     domain.Payment{DPAmount: c.DPAmount},
		CurrentStep: c.CurrentStep,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if d.CurrentStep < 1 {
		d.CurrentStep = 1
	}
	d.Totals = pricing.Breakdown(d.Service, d.Addons, 0)
	return d, nil
}
