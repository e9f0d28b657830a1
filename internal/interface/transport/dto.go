package transport

import (
	"net/mail"
	"strings"
	"time"

	"booking-service/internal/domain/entity"
)

// SessionHeader carries the guest's booking session id.
const SessionHeader = "X-Session-ID"

type bookingRequest struct {
	PropertyID       string                   `json:"propertyId"`
	Property         *entity.PropertySnapshot `json:"property,omitempty"`
	CheckIn          *time.Time               `json:"checkIn,omitempty"`
	CheckOut         *time.Time               `json:"checkOut,omitempty"`
	Guests           entity.GuestDetails      `json:"guests"`
	PaymentConfirmed bool                     `json:"paymentConfirmed"`
	GuestEmail       string                   `json:"guestEmail,omitempty"`
}

func (r bookingRequest) dates() entity.BookingDates {
	return entity.BookingDates{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// check rejects negative guest counts and a malformed guest email, and reduces the email to
// its bare address. It returns the client-facing message, or "" when the request is usable.
func (r *bookingRequest) check() string {
	g := r.Guests
	if g.Rooms < 0 || g.Adults < 0 || g.Children < 0 {
		return "guest counts must not be negative"
	}
	for _, age := range g.ChildAges {
		if age < 0 {
			return "child ages must not be negative"
		}
	}
	if r.GuestEmail == "" {
		return ""
	}
	if strings.ContainsAny(r.GuestEmail, "\r\n") {
		return "invalid guest email"
	}
	addr, err := mail.ParseAddress(r.GuestEmail)
	if err != nil {
		return "invalid guest email"
	}
	r.GuestEmail = addr.Address
	return ""
}

type validationResponse struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing"`
	Message string   `json:"message,omitempty"`
}

type sessionUpdateRequest struct {
	PriceOverride      *float64 `json:"priceOverride"`
	ClearPriceOverride bool     `json:"clearPriceOverride"`
	AltDateRange       *string  `json:"altDateRange"`
}

type parseDatesRequest struct {
	Text string `json:"text"`
}

type parseDatesResponse struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Display  string `json:"display"`
	Nights   int    `json:"nights"`
}

type quoteRequest struct {
	PricePerNight float64    `json:"pricePerNight"`
	PriceOverride *float64   `json:"priceOverride,omitempty"`
	CheckIn       *time.Time `json:"checkIn,omitempty"`
	CheckOut      *time.Time `json:"checkOut,omitempty"`
	Nights        int        `json:"nights,omitempty"`
	Rooms         int        `json:"rooms"`
	Currency      string     `json:"currency,omitempty"`
}

type quoteResponse struct {
	entity.PricingBreakdown
	Formatted string `json:"formattedTotal"`
	Currency  string `json:"currency"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}
