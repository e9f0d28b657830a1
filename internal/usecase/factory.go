package usecase

import (
	"strconv"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/pkg/idgen"
	"booking-service/pkg/utils"
)

const (
	confirmationCodeLength = 6
	minPIN                 = 1000
	maxPIN                 = 9999
)

// ReservationFactory assembles reservation records from validated booking input.
type ReservationFactory struct {
	ids      idgen.Generator
	dates    DateFormatter
	money    CurrencyFormatter
	currency string
	now      func() time.Time
}

// NewReservationFactory creates a factory that prices in the given ISO currency.
func NewReservationFactory(ids idgen.Generator, dates DateFormatter, money CurrencyFormatter, currency string) *ReservationFactory {
	return &ReservationFactory{
		ids:      ids,
		dates:    dates,
		money:    money,
		currency: currency,
		now:      time.Now,
	}
}

// Create builds a Confirmed reservation. Missing property metadata falls back to defaults.
func (f *ReservationFactory) Create(
	dates entity.BookingDates,
	guests entity.GuestDetails,
	pricing entity.PricingBreakdown,
	property entity.PropertySnapshot,
	propertyID string,
) *entity.Reservation {
	price := f.money.FormatCurrency(pricing.Total, f.currency)
	now := f.now().UTC()

	details := entity.ReservationDetails{
		ConfirmationNumber: f.ids.UpperAlphaNum(confirmationCodeLength),
		PIN:                strconv.Itoa(f.ids.IntBetween(minPIN, maxPIN)),
		PropertyDetails:    property.ResolvedDetails(),
		TotalPrice:         price,
		ShareOptions:       []string{},
	}
	if dates.Complete() {
		details.CheckIn = utils.FormatISO(*dates.CheckIn)
		details.CheckOut = utils.FormatISO(*dates.CheckOut)
	}

	return &entity.Reservation{
		ID:           f.ids.BookingID(),
		PropertyID:   propertyID,
		PropertyName: property.Name,
		Location:     property.Address,
		Dates:        f.displayDates(dates),
		Price:        price,
		Status:       entity.StatusConfirmed,
		Details:      details,
		Guests:       guests,
		Pricing:      pricing,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (f *ReservationFactory) displayDates(dates entity.BookingDates) string {
	if !dates.Complete() {
		return entity.DatesNotSet
	}
	return f.dates.FormatShortDate(*dates.CheckIn) + " - " + f.dates.FormatShortDate(*dates.CheckOut)
}
