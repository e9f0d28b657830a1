package utils

// Date layouts
const (
	SHORT_DATE_LAYOUT = "Jan 2"
	ISO_LAYOUT        = "2006-01-02T15:04:05.000Z07:00"
)

// directLayouts are tried as-is before any year is appended.
var directLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon Jan 2 2006",
	"Mon, Jan 2 2006",
}
