package usecase

import (
	"math"

	"booking-service/internal/domain/entity"
)

// PricingCalculator prices a stay. It is pure and safe for concurrent use.
type PricingCalculator struct{}

// NewPricingCalculator creates a calculator using the flat tax rate.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Price returns the breakdown for a stay. override wins over basePricePerNight when set; a
// zero base price falls back to FallbackPricePerNight. nights and rooms below 1 count as 1.
func (PricingCalculator) Price(basePricePerNight float64, override *float64, nights, rooms int) entity.PricingBreakdown {
	nightly := basePricePerNight
	if override != nil {
		nightly = *override
	} else if nightly == 0 {
		nightly = entity.FallbackPricePerNight
	}
	if nights < 1 {
		nights = 1
	}
	if rooms < 1 {
		rooms = 1
	}

	subtotal := nightly * float64(nights) * float64(rooms)
	taxes := math.Round(subtotal * entity.TaxRate)

	return entity.PricingBreakdown{
		PricePerNight: nightly,
		Nights:        nights,
		Rooms:         rooms,
		Subtotal:      subtotal,
		TaxRate:       entity.TaxRate,
		Taxes:         taxes,
		Total:         subtotal + taxes,
	}
}
