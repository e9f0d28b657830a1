package templates

import (
	"strings"
	"testing"

	"booking-service/internal/domain/entity"
)

func TestRenderBookingConfirmation(t *testing.T) {
	t.Parallel()

	r := &entity.Reservation{
		PropertyName: "Harbor View",
		Location:     "1 Quay St",
		Dates:        "Jun 12 - Jun 14",
		Status:       entity.StatusConfirmed,
		Guests:       entity.GuestDetails{Rooms: 1, Adults: 2},
		Pricing:      entity.PricingBreakdown{TaxRate: entity.TaxRate},
		Details: entity.ReservationDetails{
			ConfirmationNumber: "AB12CD",
			PIN:                "4321",
			TotalPrice:         "€224",
			PropertyDetails: entity.PropertyDetails{
				RoomType:          "Standard",
				BreakfastIncluded: true,
			},
		},
	}

	subject, body, err := RenderBookingConfirmation(r)
	if err != nil {
		t.Fatalf("RenderBookingConfirmation() error = %v", err)
	}
	if subject != "Booking confirmed: Harbor View (AB12CD)" {
		t.Fatalf("unexpected subject %q", subject)
	}
	for _, want := range []string{"PIN: 4321", "Dates: Jun 12 - Jun 14", "Breakfast included", "Total paid: €224 (includes 12% taxes)", "2 adult(s), 1 room(s)"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "non-refundable") {
		t.Fatalf("unexpected refund notice:\n%s", body)
	}
}
