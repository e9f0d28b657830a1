package usecase

import "booking-service/internal/domain/entity"

// Validate returns the labels of every missing booking field, in check order.
// An empty result means the booking may be created.
func Validate(dates entity.BookingDates, guests entity.GuestDetails, paymentConfirmed bool) []string {
	missing := make([]string, 0, 3)
	if !dates.Complete() {
		missing = append(missing, entity.FieldDates)
	}
	if !guests.HasOccupancy() {
		missing = append(missing, entity.FieldGuests)
	}
	if !paymentConfirmed {
		missing = append(missing, entity.FieldPaymentMethod)
	}
	return missing
}
