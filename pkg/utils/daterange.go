package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"booking-service/internal/domain/entity"
)

var (
	dashRe         = regexp.MustCompile(`\s*[-–—]\s*`)
	spaceRe        = regexp.MustCompile(`\s+`)
	bareDayRe      = regexp.MustCompile(`^\d{1,2}$`)
	dayMonthRe     = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]+)\.?(?:\s+(\d{4}))?$`)
	trailingYearRe = regexp.MustCompile(`\b\d{4}$`)
)

// DateRangeParser turns loose human date ranges such as "12 - 15 Jun" into check-in/check-out dates.
type DateRangeParser struct {
	now      func() time.Time
	location *time.Location
}

// NewDateRangeParser creates a parser. A nil now uses time.Now; dates are resolved in UTC.
func NewDateRangeParser(now func() time.Time) *DateRangeParser {
	if now == nil {
		now = time.Now
	}
	return &DateRangeParser{now: now, location: time.UTC}
}

// Parse returns the dates for rangeText. ok is false when the text has no usable
// "<start> - <end>" shape or either side cannot be resolved.
func (p *DateRangeParser) Parse(rangeText string) (entity.BookingDates, bool) {
	normalized := strings.TrimSpace(rangeText)
	normalized = dashRe.ReplaceAllString(normalized, "-")
	normalized = spaceRe.ReplaceAllString(normalized, " ")
	if normalized == "" {
		return entity.BookingDates{}, false
	}

	parts := strings.Split(normalized, "-")
	if len(parts) != 2 {
		return entity.BookingDates{}, false
	}
	startText := strings.TrimSpace(parts[0])
	endText := strings.TrimSpace(parts[1])

	year := p.now().In(p.location).Year()

	// A bare day on the check-in side borrows its month and year from the check-out side.
	var checkIn, checkOut time.Time
	var ok bool
	if bareDayRe.MatchString(startText) {
		if checkOut, ok = p.resolve(endText, nil, year); !ok {
			return entity.BookingDates{}, false
		}
		month := checkOut.Month()
		if checkIn, ok = p.resolve(startText, &month, checkOut.Year()); !ok {
			return entity.BookingDates{}, false
		}
	} else {
		if checkIn, ok = p.resolve(startText, nil, year); !ok {
			return entity.BookingDates{}, false
		}
		month := checkIn.Month()
		if checkOut, ok = p.resolve(endText, &month, year); !ok {
			return entity.BookingDates{}, false
		}
	}

	if !checkOut.After(checkIn) {
		if advanced := checkOut.AddDate(1, 0, 0); advanced.After(checkIn) {
			checkOut = advanced
		}
	}

	return entity.NewBookingDates(checkIn, checkOut), true
}

// resolve runs the fallback chain for one side of the range.
func (p *DateRangeParser) resolve(segment string, refMonth *time.Month, year int) (time.Time, bool) {
	if segment == "" {
		return time.Time{}, false
	}

	if refMonth != nil && bareDayRe.MatchString(segment) {
		day, _ := strconv.Atoi(segment)
		if t := time.Date(year, *refMonth, day, 0, 0, 0, 0, p.location); day >= 1 && t.Day() == day {
			return t, true
		}
	}

	if t, ok := p.parseDirect(segment); ok {
		return t, true
	}

	if !trailingYearRe.MatchString(segment) {
		if t, ok := p.parseDirect(segment + " " + strconv.Itoa(year)); ok {
			return t, true
		}
	}

	if m := dayMonthRe.FindStringSubmatch(segment); m != nil {
		y := strconv.Itoa(year)
		if m[3] != "" {
			y = m[3]
		}
		if t, ok := p.parseDirect(m[2] + " " + m[1] + " " + y); ok {
			return t, true
		}
	}

	return time.Time{}, false
}

func (p *DateRangeParser) parseDirect(value string) (time.Time, bool) {
	for _, layout := range directLayouts {
		if t, err := time.ParseInLocation(layout, value, p.location); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location), true
		}
	}
	return time.Time{}, false
}
