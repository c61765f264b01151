package domain

import "time"

// AddonSelection is a line in the draft. PriceAtBooking is a snapshot taken at
// selection time so later catalog price changes cannot move an open draft.
// Quantity is always >= 1; dropping below 1 removes the line.
type AddonSelection struct {
	AddonID        int64  `json:"addon_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	PriceAtBooking int64  `json:"price_at_booking"`
}

type Schedule struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	LocationLink string `json:"location_link,omitempty"`
}

type Contact struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	Notes    string `json:"notes,omitempty"`
}

// Payment holds the claimed down payment and the stored proof handle.
// The proof binary itself lives on disk, never inside the draft.
type Payment struct {
	DPAmount  int64  `json:"dp_amount"`
	ProofPath string `json:"proof_path,omitempty"`
	ProofURL  string `json:"proof_url,omitempty"`
}

// CouponState is the applied slice of coupon state. Discount must never outlive
// the code it was granted for.
type CouponState struct {
	Code     string `json:"code,omitempty"`
	Discount int64  `json:"discount"`
}

// Totals are derived. They are recomputed after every mutation and never set
// independently: TotalPrice == max(0, ServiceBasePrice - BaseDiscount + AddonsTotal - CouponDiscount).
type Totals struct {
	ServiceBasePrice int64 `json:"service_base_price"`
	BaseDiscount     int64 `json:"base_discount"`
	AddonsTotal      int64 `json:"addons_total"`
	CouponDiscount   int64 `json:"coupon_discount"`
	TotalPrice       int64 `json:"total_price"`
}

// Draft is the aggregate root of one configurator instance. All mutation goes
// through the draft store; no other component may touch Totals.
type Draft struct {
	ID          string                   `json:"id"`
	Service     *Service                 `json:"service,omitempty"`
	Addons      map[int64]AddonSelection `json:"addons"`
	Coupon      CouponState              `json:"coupon"`
	Schedule    Schedule                 `json:"schedule"`
	Contact     Contact                  `json:"contact"`
	Payment     Payment                  `json:"payment"`
	Totals      Totals                   `json:"totals"`
	CurrentStep int                      `json:"current_step"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}
