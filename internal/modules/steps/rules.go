package steps

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"photobooking/internal/domain"
)

// Step numbers of the booking configurator.
const (
	StepService  = 1
	StepAddons   = 2
	StepSchedule = 3
	StepContact  = 4
	StepPayment  = 5

	TotalSteps = 5
)

const (
	maxNameLen  = 100
	maxNotesLen = 500
)

var whatsappRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// Rules holds the per-step validation gates. now is injectable for tests.
type Rules struct {
	DPMinAmount int64
	now         func() time.Time
}

func NewRules(dpMinAmount int64) Rules {
	return Rules{DPMinAmount: dpMinAmount, now: time.Now}
}

// ValidateStep runs the rule set for one step only against the current draft.
func (r Rules) ValidateStep(d *domain.Draft, step int) []domain.StepError {
	switch step {
	case StepService:
		return r.validateService(d)
	case StepAddons:
		// Add-ons are optional; the step never blocks.
		return nil
	case StepSchedule:
		return r.validateSchedule(d)
	case StepContact:
		return r.validateContact(d)
	case StepPayment:
		return r.validatePayment(d)
	default:
		return nil
	}
}

func (r Rules) validateService(d *domain.Draft) []domain.StepError {
	if d.Service == nil {
		return []domain.StepError{{Field: "service_id", Message: "service is required"}}
	}
	return nil
}

func (r Rules) validateSchedule(d *domain.Draft) []domain.StepError {
	var errs []domain.StepError

	nowFn := r.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if d.Schedule.Date == "" {
		errs = append(errs, domain.StepError{Field: "date", Message: "date is required"})
	} else if day, err := time.Parse("2006-01-02", d.Schedule.Date); err != nil {
		errs = append(errs, domain.StepError{Field: "date", Message: "invalid date format"})
	} else if day.Before(today) {
		errs = append(errs, domain.StepError{Field: "date", Message: "date cannot be in the past"})
	}

	if d.Schedule.Time == "" {
		errs = append(errs, domain.StepError{Field: "time", Message: "time is required"})
	} else if t, err := time.Parse("15:04", d.Schedule.Time); err != nil {
		errs = append(errs, domain.StepError{Field: "time", Message: "invalid time format"})
	} else if t.Minute()%30 != 0 {
		errs = append(errs, domain.StepError{Field: "time", Message: "time must be on a 30-minute boundary"})
	}

	if isOutdoor(d.Service) {
		if d.Schedule.LocationLink == "" {
			errs = append(errs, domain.StepError{Field: "location_link", Message: "location link is required for outdoor sessions"})
		} else if !isWellFormedURL(d.Schedule.LocationLink) {
			errs = append(errs, domain.StepError{Field: "location_link", Message: "location link must be a valid URL"})
		}
	}

	return errs
}

func (r Rules) validateContact(d *domain.Draft) []domain.StepError {
	var errs []domain.StepError

	name := strings.TrimSpace(d.Contact.Name)
	if name == "" {
		errs = append(errs, domain.StepError{Field: "name", Message: "name is required"})
	} else if len(name) > maxNameLen {
		errs = append(errs, domain.StepError{Field: "name", Message: "name is too long"})
	}

	wa := strings.TrimSpace(d.Contact.WhatsApp)
	if wa == "" {
		errs = append(errs, domain.StepError{Field: "whatsapp", Message: "whatsapp number is required"})
	} else if !whatsappRe.MatchString(wa) {
		errs = append(errs, domain.StepError{Field: "whatsapp", Message: "whatsapp number is not valid"})
	}

	if len(d.Contact.Notes) > maxNotesLen {
		errs = append(errs, domain.StepError{Field: "notes", Message: "notes are too long"})
	}

	return errs
}

func (r Rules) validatePayment(d *domain.Draft) []domain.StepError {
	var errs []domain.StepError

	floor := r.DPMinAmount
	if floor > d.Totals.TotalPrice {
		floor = d.Totals.TotalPrice
	}
	if floor < 1 {
		floor = 1
	}

	switch {
	case d.Payment.DPAmount < floor:
		errs = append(errs, domain.StepError{Field: "dp_amount", Message: "down payment is below the minimum"})
	case d.Payment.DPAmount > d.Totals.TotalPrice:
		errs = append(errs, domain.StepError{Field: "dp_amount", Message: "down payment exceeds the total price"})
	}

	if d.Payment.ProofPath == "" {
		errs = append(errs, domain.StepError{Field: "payment_proof", Message: "payment proof is required"})
	}

	return errs
}

func isOutdoor(svc *domain.Service) bool {
	return svc != nil && strings.Contains(strings.ToLower(svc.Name), "outdoor")
}

func isWellFormedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
