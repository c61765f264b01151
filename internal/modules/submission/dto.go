package submission

import "photobooking/internal/domain"

// bookingPayload is the external booking-creation contract. The finance block
// repeats the full price breakdown so the server can audit and reconstruct the
// total without re-querying the catalog.
type bookingPayload struct {
	Customer customerBlock `json:"customer"`
	Booking  bookingBlock  `json:"booking"`
	Finance  financeBlock  `json:"finance"`
	Addons   []addonLine   `json:"addons"`
}

type customerBlock struct {
	Name      string `json:"name"`
	WhatsApp  string `json:"whatsapp"`
	Category  string `json:"category"`
	ServiceID int64  `json:"service_id"`
}

type bookingBlock struct {
	DateTime     string `json:"date_time"`
	Notes        string `json:"notes,omitempty"`
	LocationLink string `json:"location_link,omitempty"`
}

type financeBlock struct {
	TotalPrice int64           `json:"total_price"`
	Payments   []paymentRecord `json:"payments"`
	Breakdown  priceBreakdown  `json:"breakdown"`
}

type paymentRecord struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

type priceBreakdown struct {
	BasePrice      int64  `json:"base_price"`
	BaseDiscount   int64  `json:"base_discount"`
	AddonsTotal    int64  `json:"addons_total"`
	CouponDiscount int64  `json:"coupon_discount"`
	CouponCode     string `json:"coupon_code,omitempty"`
}

type addonLine struct {
	AddonID        int64  `json:"addon_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	PriceAtBooking int64  `json:"price_at_booking"`
}

type bookingCreated struct {
	ID int64 `json:"id"`
}

// SubmitResult is what the UI needs after a confirmed booking: the identifier,
// the rendered hand-off message and the messaging deep link.
type SubmitResult struct {
	BookingID    int64              `json:"booking_id"`
	Message      string             `json:"message"`
	WhatsAppLink string             `json:"whatsapp_link"`
	StepErrors   []domain.StepError `json:"step_errors,omitempty"`
}
