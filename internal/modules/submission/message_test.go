package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleVars() map[string]string {
	return map[string]string{
		"customer_name": "Rina Wijaya",
		"service_name":  "Wedding Premium",
		"date":          "15 September 2026",
		"time":          "14:30",
		"total":         "Rp 575.000",
		"booking_id":    "42",
	}
}

func TestMessenger_Render_SubstitutesKnownPlaceholders(t *testing.T) {
	m := NewMessenger("Halo {{customer_name}}, paket {{service_name}} tanggal {{date}} jam {{time}}. Total {{total}}. Ref {{booking_id}}.", "+62811")

	out := m.Render(sampleVars())

	assert.Equal(t, "Halo Rina Wijaya, paket Wedding Premium tanggal 15 September 2026 jam 14:30. Total Rp 575.000. Ref 42.", out)
}

func TestMessenger_Render_UnknownPlaceholdersLeftAlone(t *testing.T) {
	m := NewMessenger("Ref {{booking_id}} untuk {{studio_name}}", "+62811")

	out := m.Render(sampleVars())

	assert.Equal(t, "Ref 42 untuk {{studio_name}}", out)
}

func TestMessenger_Render_FallbackOnEmptyTemplate(t *testing.T) {
	m := NewMessenger("   ", "+62811")

	out := m.Render(sampleVars())

	assert.Equal(t, "Booking confirmed: Rina Wijaya / Wedding Premium on 15 September 2026 at 14:30, total Rp 575.000 (ref 42).", out)
}

func TestMessenger_Render_FallbackWhenNothingSubstitutes(t *testing.T) {
	// A template with no recognized placeholder would send a message carrying
	// none of the booking facts; the fixed format takes over instead.
	m := NewMessenger("Terima kasih sudah booking!", "+62811")

	out := m.Render(sampleVars())

	assert.Contains(t, out, "Rina Wijaya")
	assert.Contains(t, out, "42")
}

func TestMessenger_DeepLink(t *testing.T) {
	m := NewMessenger("", "+6281111111111")

	link := m.DeepLink("Halo, total Rp 575.000 & ref 42")

	assert.Equal(t, "https://wa.me/6281111111111?text=Halo%2C+total+Rp+575.000+%26+ref+42", link)
}

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "Rp 0", formatIDR(0))
	assert.Equal(t, "Rp 999", formatIDR(999))
	assert.Equal(t, "Rp 1.000", formatIDR(1000))
	assert.Equal(t, "Rp 575.000", formatIDR(575000))
	assert.Equal(t, "Rp 12.345.678", formatIDR(12345678))
	assert.Equal(t, "-Rp 50.000", formatIDR(-50000))
}
