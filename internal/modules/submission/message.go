package submission

import (
	"fmt"
	"net/url"
	"strings"
)

// messageVars is the closed placeholder vocabulary of the hand-off template.
// Anything outside this set is left untouched; the contract needs no general
// templating engine.
var messageVars = []string{
	"customer_name",
	"service_name",
	"date",
	"time",
	"total",
	"booking_id",
}

// Messenger renders the hand-off message and builds the WhatsApp deep link.
// It never sends anything itself.
type Messenger struct {
	template string
	address  string
}

func NewMessenger(template, address string) *Messenger {
	return &Messenger{template: template, address: address}
}

// Render substitutes the known placeholders. If the template is unusable the
// fixed-format fallback is used: a broken template must not block completion.
func (m *Messenger) Render(vars map[string]string) string {
	if strings.TrimSpace(m.template) == "" {
		return fallbackMessage(vars)
	}

	out := m.template
	substituted := false
	for _, key := range messageVars {
		placeholder := "{{" + key + "}}"
		if strings.Contains(out, placeholder) {
			out = strings.ReplaceAll(out, placeholder, vars[key])
			substituted = true
		}
	}
	if !substituted {
		return fallbackMessage(vars)
	}
	return out
}

// DeepLink produces the wa.me URI with the message pre-filled.
func (m *Messenger) DeepLink(message string) string {
	addr := strings.TrimPrefix(strings.TrimSpace(m.address), "+")
	return "https://wa.me/" + addr + "?text=" + url.QueryEscape(message)
}

func fallbackMessage(vars map[string]string) string {
	return fmt.Sprintf(
		"Booking confirmed: %s / %s on %s at %s, total %s (ref %s).",
		vars["customer_name"],
		vars["service_name"],
		vars["date"],
		vars["time"],
		vars["total"],
		vars["booking_id"],
	)
}

// formatIDR renders integer currency units the way the UI shows them,
// e.g. 575000 -> "Rp 575.000".
func formatIDR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}

	out := "Rp " + b.String()
	if neg {
		out = "-" + out
	}
	return out
}
