package templates

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"

	"booking-service/internal/domain/entity"
)

const bookingConfirmationBody = `Hello,

Your booking at {{.PropertyName}} is {{.Status}}.

Confirmation number: {{.Details.ConfirmationNumber}}
PIN: {{.Details.PIN}}
Dates: {{.Dates}}
{{- if .Location}}
Address: {{.Location}}
{{- end}}
Room: {{.Details.RoomType}}
{{- if .Details.BreakfastIncluded}}
Breakfast included
{{- end}}
{{- if .Details.NonRefundable}}
This booking is non-refundable.
{{- end}}
{{- if .Details.IncludedExtras}}
Extras: {{.Details.IncludedExtras}}
{{- end}}

Guests: {{.Guests.Adults}} adult(s){{if .Guests.Children}}, {{.Guests.Children}} child(ren){{end}}, {{.Guests.Rooms}} room(s)
{{- if .Details.ContactNumber}}
Property contact: {{.Details.ContactNumber}}
{{- end}}

Total paid: {{.Details.TotalPrice}} (includes {{taxPercent .Pricing.TaxRate}} taxes)
`

var bookingConfirmation = template.Must(template.New("booking_confirmation").
	Funcs(template.FuncMap{
		"taxPercent": func(rate float64) string { return fmt.Sprintf("%g%%", math.Round(rate*10000)/100) },
	}).
	Parse(bookingConfirmationBody))

// RenderBookingConfirmation returns the subject and plain-text body of a guest receipt.
func RenderBookingConfirmation(r *entity.Reservation) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := bookingConfirmation.Execute(&buf, r); err != nil {
		return "", "", fmt.Errorf("render booking confirmation: %w", err)
	}
	name := strings.TrimSpace(r.PropertyName)
	if name == "" {
		name = "your stay"
	}
	subject = fmt.Sprintf("Booking confirmed: %s (%s)", name, r.Details.ConfirmationNumber)
	return subject, buf.String(), nil
}
