package entity

import (
	"math"
	"time"
)

// BookingDates is the check-in/check-out pair chosen by the guest. Either side may be unset.
type BookingDates struct {
	CheckIn  *time.Time `json:"checkIn,omitempty" bson:"checkIn,omitempty"`
	CheckOut *time.Time `json:"checkOut,omitempty" bson:"checkOut,omitempty"`
}

// NewBookingDates builds a BookingDates with both sides set.
func NewBookingDates(checkIn, checkOut time.Time) BookingDates {
	return BookingDates{CheckIn: &checkIn, CheckOut: &checkOut}
}

// Complete reports whether both dates are present.
func (d BookingDates) Complete() bool {
	return d.CheckIn != nil && d.CheckOut != nil && !d.CheckIn.IsZero() && !d.CheckOut.IsZero()
}

// Nights returns the number of nights between the dates, rounded up to whole days.
// It is never less than 1, including when the dates are absent.
func (d BookingDates) Nights() int {
	if !d.Complete() {
		return 1
	}
	days := math.Ceil(d.CheckOut.Sub(*d.CheckIn).Hours() / 24)
	if days < 1 {
		return 1
	}
	return int(days)
}

// GuestDetails describes who is staying.
type GuestDetails struct {
	Rooms     int   `json:"rooms" bson:"rooms"`
	Adults    int   `json:"adults" bson:"adults"`
	Children  int   `json:"children,omitempty" bson:"children,omitempty"`
	ChildAges []int `json:"childAges,omitempty" bson:"childAges,omitempty"`
	Pets      bool  `json:"pets,omitempty" bson:"pets,omitempty"`
}

// HasOccupancy reports whether rooms and adults are both non-zero.
func (g GuestDetails) HasOccupancy() bool {
	return g.Rooms != 0 && g.Adults != 0
}
