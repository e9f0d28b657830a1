package utils

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

// ShortDateFormatter renders a date as month abbreviation plus day, e.g. "Jun 12".
type ShortDateFormatter struct {
	Layout string
}

// NewShortDateFormatter returns the default "Jan 2" formatter.
func NewShortDateFormatter() ShortDateFormatter {
	return ShortDateFormatter{Layout: SHORT_DATE_LAYOUT}
}

// FormatShortDate formats t in its own location.
func (f ShortDateFormatter) FormatShortDate(t time.Time) string {
	layout := f.Layout
	if layout == "" {
		layout = SHORT_DATE_LAYOUT
	}
	return t.Format(layout)
}

// currencySymbols lists prefixes for the currencies we display. Others fall back to "<ISO> ".
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"TRY": "₺",
}

// CurrencyFormatter prefixes a whole-unit amount with the currency symbol, e.g. "€224".
type CurrencyFormatter struct{}

// FormatCurrency rounds amount to whole units. Unknown codes are upper-cased and used as the prefix.
func (CurrencyFormatter) FormatCurrency(amount float64, code string) string {
	whole := strconv.FormatInt(int64(math.Round(amount)), 10)

	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(code)) + " " + whole
	}
	if symbol, ok := currencySymbols[unit.String()]; ok {
		return symbol + whole
	}
	return unit.String() + " " + whole
}

// FormatISO renders t as an ISO-8601 UTC timestamp with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISO_LAYOUT)
}
