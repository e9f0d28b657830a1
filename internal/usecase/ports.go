package usecase

import (
	"time"

	"booking-service/internal/domain/entity"
)

// DateFormatter renders the short "Jun 12" form used in reservation summaries.
type DateFormatter interface {
	FormatShortDate(t time.Time) string
}

// CurrencyFormatter renders an amount with its currency prefix.
type CurrencyFormatter interface {
	FormatCurrency(amount float64, code string) string
}

// DateRangeParser resolves free-text date ranges typed by a guest.
type DateRangeParser interface {
	Parse(rangeText string) (entity.BookingDates, bool)
}
