package usecase

import (
	"testing"

	"booking-service/internal/domain/entity"
)

func TestReservationFactory_Create(t *testing.T) {
	t.Parallel()

	pricing := NewPricingCalculator().Price(100, nil, 3, 1)
	property := entity.PropertySnapshot{
		Name:          "Harbor View",
		Address:       "1 Quay St",
		PricePerNight: 100,
		Details: &entity.PropertyDetails{
			RoomType:          "Deluxe",
			BreakfastIncluded: true,
			ContactNumber:     "+30 210 000",
		},
	}

	r := testFactory().Create(stay(3), entity.GuestDetails{Rooms: 1, Adults: 2}, pricing, property, "prop-1")

	if r.ID != "booking-1" {
		t.Fatalf("unexpected id %q", r.ID)
	}
	if r.Dates != "Jun 12 - Jun 15" {
		t.Fatalf("unexpected dates %q", r.Dates)
	}
	if r.Price != "€336" || r.Details.TotalPrice != "€336" {
		t.Fatalf("unexpected price %q / %q", r.Price, r.Details.TotalPrice)
	}
	if r.Status != entity.StatusConfirmed {
		t.Fatalf("expected Confirmed, got %s", r.Status)
	}
	if r.Details.ConfirmationNumber != "AB12CD" || r.Details.PIN != "4321" {
		t.Fatalf("unexpected code/pin %q/%q", r.Details.ConfirmationNumber, r.Details.PIN)
	}
	if r.Details.CheckIn != "2026-06-12T00:00:00.000Z" || r.Details.CheckOut != "2026-06-15T00:00:00.000Z" {
		t.Fatalf("unexpected ISO dates %q/%q", r.Details.CheckIn, r.Details.CheckOut)
	}
	if r.Details.RoomType != "Deluxe" || !r.Details.BreakfastIncluded || r.Details.NonRefundable {
		t.Fatalf("unexpected property details %#v", r.Details.PropertyDetails)
	}
	if r.Details.ShareOptions == nil || len(r.Details.ShareOptions) != 0 {
		t.Fatalf("expected empty share options, got %#v", r.Details.ShareOptions)
	}
	if r.PropertyName != "Harbor View" || r.Location != "1 Quay St" || r.PropertyID != "prop-1" {
		t.Fatalf("unexpected property fields %#v", r)
	}
}

func TestReservationFactory_MissingMetadata(t *testing.T) {
	t.Parallel()

	pricing := NewPricingCalculator().Price(0, nil, 1, 1)
	r := testFactory().Create(entity.BookingDates{}, entity.GuestDetails{Rooms: 1, Adults: 1}, pricing, entity.PropertySnapshot{}, "")

	if r.Dates != entity.DatesNotSet {
		t.Fatalf("expected %q, got %q", entity.DatesNotSet, r.Dates)
	}
	if r.Details.RoomType != "Standard" || r.Details.ContactNumber != "" {
		t.Fatalf("expected defaults, got %#v", r.Details.PropertyDetails)
	}
	if r.Details.CheckIn != "" || r.Details.CheckOut != "" {
		t.Fatal("expected no ISO dates when dates are absent")
	}
	if r.Price != "€112" {
		t.Fatalf("expected fallback price €112, got %q", r.Price)
	}
}
