package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"photobooking/internal/domain"
	"photobooking/internal/modules/steps"
)

const dpPaymentNote = "Down payment at booking"

// Service is the submission pipeline: validate the final step, assemble the
// multi-part booking payload, upload it, and on confirmed success tear the
// draft down and hand off to WhatsApp. The draft is only reset after a 2xx
// response, so every failure path is retry-safe.
type Service struct {
	store     DraftAccess
	validator StepValidator
	proofs    ProofStore
	coupons   CouponCleanup
	messenger *Messenger
	loggerf   func(format string, args ...interface{})

	baseURL       string
	internalToken string
	http          *http.Client

	now func() time.Time
}

func NewService(
	store DraftAccess,
	validator StepValidator,
	proofs ProofStore,
	coupons CouponCleanup,
	messenger *Messenger,
	baseURL string,
	internalToken string,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		store:         store,
		validator:     validator,
		proofs:        proofs,
		coupons:       coupons,
		messenger:     messenger,
		loggerf:       loggerf,
		baseURL:       baseURL,
		internalToken: internalToken,
		http:          &http.Client{Timeout: 30 * time.Second},
		now:           time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, draftID string) (*SubmitResult, error) {
	stepErrs, err := s.validator.Validate(ctx, draftID, steps.StepPayment)
	if err != nil {
		return nil, err
	}
	if len(stepErrs) > 0 {
		return &SubmitResult{StepErrors: stepErrs}, ErrNotReady
	}

	d, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	body, contentType, err := s.encodeMultipart(d)
	if err != nil {
		return nil, err
	}

	created, err := s.upload(ctx, body, contentType)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{BookingID: created.ID}
	result.Message = s.messenger.Render(map[string]string{
		"customer_name": d.Contact.Name,
		"service_name":  serviceName(d),
		"date":          formatDate(d.Schedule.Date),
		"time":          d.Schedule.Time,
		"total":         formatIDR(d.Totals.TotalPrice),
		"booking_id":    strconv.FormatInt(created.ID, 10),
	})
	result.WhatsAppLink = s.messenger.DeepLink(result.Message)

	// Confirmed success: only now does any state get destroyed.
	if err := s.store.Reset(ctx, draftID); err != nil {
		s.loggerf("level=error msg=failed to reset draft after submission draft_id=%s err=%v", draftID, err)
	}
	s.validator.Reset(draftID)
	s.coupons.Forget(draftID)
	if d.Payment.ProofPath != "" {
		if err := s.proofs.Remove(d.Payment.ProofPath); err != nil {
			s.loggerf("level=warn msg=failed to remove payment proof draft_id=%s path=%s err=%v", draftID, d.Payment.ProofPath, err)
		}
	}

	return result, nil
}

func (s *Service) buildPayload(d *domain.Draft) bookingPayload {
	addons := make([]addonLine, 0, len(d.Addons))
	for _, sel := range d.Addons {
		addons = append(addons, addonLine{
			AddonID:        sel.AddonID,
			Name:           sel.Name,
			Quantity:       sel.Quantity,
			PriceAtBooking: sel.PriceAtBooking,
		})
	}

	booking := bookingBlock{
		DateTime: d.Schedule.Date + "T" + d.Schedule.Time + ":00",
		Notes:    d.Contact.Notes,
	}
	if isOutdoor(d) {
		booking.LocationLink = d.Schedule.LocationLink
	}

	return bookingPayload{
		Customer: customerBlock{
			Name:      d.Contact.Name,
			WhatsApp:  d.Contact.WhatsApp,
			Category:  serviceName(d),
			ServiceID: serviceID(d),
		},
		Booking: booking,
		Finance: financeBlock{
			TotalPrice: d.Totals.TotalPrice,
			Payments: []paymentRecord{{
				Date:   s.now().UTC().Format("2006-01-02"),
				Amount: d.Payment.DPAmount,
				Note:   dpPaymentNote,
			}},
			Breakdown: priceBreakdown{
				BasePrice:      d.Totals.ServiceBasePrice,
				BaseDiscount:   d.Totals.BaseDiscount,
				AddonsTotal:    d.Totals.AddonsTotal,
				CouponDiscount: d.Totals.CouponDiscount,
				CouponCode:     d.Coupon.Code,
			},
		},
		Addons: addons,
	}
}

func (s *Service) encodeMultipart(d *domain.Draft) (*bytes.Buffer, string, error) {
	payload, err := json.Marshal(s.buildPayload(d))
	if err != nil {
		return nil, "", fmt.Errorf("payload marshal failed: %w", err)
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormField("payload")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(payload); err != nil {
		return nil, "", err
	}

	if d.Payment.ProofPath != "" {
		file, err := s.proofs.Open(d.Payment.ProofPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open payment proof: %w", err)
		}
		defer file.Close()

		filePart, err := w.CreateFormFile("payment_proof", filepath.Base(d.Payment.ProofPath))
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(filePart, file); err != nil {
			return nil, "", fmt.Errorf("failed to stream payment proof: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func (s *Service) upload(ctx context.Context, body *bytes.Buffer, contentType string) (*bookingCreated, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/bookings", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if s.internalToken != "" {
		req.Header.Set("X-Internal-Token", s.internalToken)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booking upload failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("booking response read failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Message: remoteMessage(raw)}
	}

	var created bookingCreated
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("booking response decode failed: %w", err)
	}
	return &created, nil
}

// remoteMessage pulls the server's own error text out of the response body so
// it can be surfaced verbatim.
func remoteMessage(raw []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func serviceName(d *domain.Draft) string {
	if d.Service == nil {
		return ""
	}
	return d.Service.Name
}

func serviceID(d *domain.Draft) int64 {
	if d.Service == nil {
		return 0
	}
	return d.Service.ID
}

func isOutdoor(d *domain.Draft) bool {
	return d.Service != nil && strings.Contains(strings.ToLower(d.Service.Name), "outdoor")
}

func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2 January 2006")
}
