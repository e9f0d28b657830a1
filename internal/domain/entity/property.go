package entity

// PropertyDetails are the hotel fields a receipt needs. Copied into the reservation at creation
// time and never re-synced with the listing.
type PropertyDetails struct {
	RoomType          string `json:"roomType" bson:"roomType"`
	IncludedExtras    string `json:"includedExtras" bson:"includedExtras"`
	BreakfastIncluded bool   `json:"breakfastIncluded" bson:"breakfastIncluded"`
	NonRefundable     bool   `json:"nonRefundable" bson:"nonRefundable"`
	ContactNumber     string `json:"contactNumber" bson:"contactNumber"`
}

// PropertySnapshot is a point-in-time copy of the hotel listing.
type PropertySnapshot struct {
	Name          string           `json:"name" bson:"name"`
	Address       string           `json:"address" bson:"address"`
	PricePerNight float64          `json:"pricePerNight" bson:"pricePerNight"`
	Details       *PropertyDetails `json:"details,omitempty" bson:"details,omitempty"`
}

// DefaultRoomType is used when the listing does not name a room type.
const DefaultRoomType = "Standard"

// ResolvedDetails returns the snapshot details with defaults filled in for anything missing.
func (p PropertySnapshot) ResolvedDetails() PropertyDetails {
	if p.Details == nil {
		return PropertyDetails{RoomType: DefaultRoomType}
	}
	d := *p.Details
	if d.RoomType == "" {
		d.RoomType = DefaultRoomType
	}
	return d
}
