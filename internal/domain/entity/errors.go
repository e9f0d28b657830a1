package entity

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrInvalidStatus        = errors.New("invalid reservation status")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrSubmissionInProgress = errors.New("booking already in progress")
)

// Missing-field labels, in check order.
const (
	FieldDates         = "dates"
	FieldGuests        = "guests"
	FieldPaymentMethod = "payment method"
)

// MissingFieldsPrefix starts every missing-field message.
const MissingFieldsPrefix = "Please provide: "

// FormatMissingFields renders labels as "Please provide: Dates & Guests & Payment Method".
func FormatMissingFields(missing []string) string {
	caser := cases.Title(language.English)
	labels := make([]string, len(missing))
	for i, field := range missing {
		labels[i] = caser.String(field)
	}
	return MissingFieldsPrefix + strings.Join(labels, " & ")
}

// ValidationError lists the fields a booking is missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return FormatMissingFields(e.Missing)
}

// PersistenceError is returned when a reservation could not be written.
type PersistenceError struct {
	ReservationID string
	Err           error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist reservation %s: %v", e.ReservationID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// StatusTransitionError is returned when an operator status update fails.
type StatusTransitionError struct {
	ReservationID string
	Target        AdminStatus
	Err           error
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("update reservation %s to %s: %v", e.ReservationID, e.Target, e.Err)
}

func (e *StatusTransitionError) Unwrap() error { return e.Err }
