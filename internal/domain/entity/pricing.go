package entity

// TaxRate is the flat tax applied to every stay.
const TaxRate = 0.12

// FallbackPricePerNight is charged when neither an override nor a listing price is known.
const FallbackPricePerNight = 100

// PricingBreakdown is the priced result for a stay.
// Subtotal = PricePerNight * Nights * Rooms, Taxes = round(Subtotal * TaxRate), Total = Subtotal + Taxes.
type PricingBreakdown struct {
	PricePerNight float64 `json:"pricePerNight" bson:"pricePerNight"`
	Nights        int     `json:"nights" bson:"nights"`
	Rooms         int     `json:"rooms" bson:"rooms"`
	Subtotal      float64 `json:"subtotal" bson:"subtotal"`
	TaxRate       float64 `json:"taxRate" bson:"taxRate"`
	Taxes         float64 `json:"taxes" bson:"taxes"`
	Total         float64 `json:"total" bson:"total"`
}
