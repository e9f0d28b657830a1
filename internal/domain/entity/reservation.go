package entity

import "time"

// DatesNotSet is shown in place of the date range when either date is missing.
const DatesNotSet = "Dates not set"

// ReservationDetails holds everything a confirmation screen renders.
type ReservationDetails struct {
	ConfirmationNumber string `json:"confirmationNumber" bson:"confirmationNumber"`
	PIN                string `json:"pin" bson:"pin"`
	CheckIn            string `json:"checkIn,omitempty" bson:"checkIn,omitempty"`
	CheckOut           string `json:"checkOut,omitempty" bson:"checkOut,omitempty"`
	PropertyDetails    `bson:",inline"`
	TotalPrice         string   `json:"totalPrice" bson:"totalPrice"`
	ShareOptions       []string `json:"shareOptions" bson:"shareOptions"`
}

// Reservation is the persisted booking record.
type Reservation struct {
	ID           string             `json:"id" bson:"id"`
	PropertyID   string             `json:"propertyId" bson:"propertyId"`
	PropertyName string             `json:"propertyName" bson:"propertyName"`
	Location     string             `json:"location" bson:"location"`
	Dates        string             `json:"dates" bson:"dates"`
	Price        string             `json:"price" bson:"price"`
	Status       ReservationStatus  `json:"status" bson:"status"`
	Details      ReservationDetails `json:"details" bson:"details"`
	Guests       GuestDetails       `json:"guests" bson:"guests"`
	Pricing      PricingBreakdown   `json:"pricing" bson:"pricing"`
	GuestEmail   string             `json:"guestEmail,omitempty" bson:"guestEmail,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ReservationAction names what happened to a reservation.
type ReservationAction string

const (
	ActionCreated       ReservationAction = "created"
	ActionStatusChanged ReservationAction = "status_changed"
	ActionUnchanged     ReservationAction = "unchanged"
)

// ReservationChangedEvent tells read views of a hotel's reservation list to refresh.
type ReservationChangedEvent struct {
	ReservationID  string            `json:"reservationId"`
	PropertyID     string            `json:"propertyId"`
	Action         ReservationAction `json:"action"`
	PreviousStatus ReservationStatus `json:"previousStatus,omitempty"`
	Status         ReservationStatus `json:"status"`
	Changed        bool              `json:"changed"`
	OccurredAt     time.Time         `json:"occurredAt"`
}
