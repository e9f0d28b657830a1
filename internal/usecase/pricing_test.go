package usecase

import (
	"math"
	"testing"
)

func TestPricingCalculator(t *testing.T) {
	t.Parallel()

	override := 80.0
	zero := 0.0

	cases := []struct {
		name     string
		base     float64
		override *float64
		nights   int
		rooms    int
		subtotal float64
		taxes    float64
		total    float64
	}{
		{name: "base price", base: 100, nights: 3, rooms: 2, subtotal: 600, taxes: 72, total: 672},
		{name: "two nights one room", base: 100, nights: 2, rooms: 1, subtotal: 200, taxes: 24, total: 224},
		{name: "override wins", base: 100, override: &override, nights: 1, rooms: 1, subtotal: 80, taxes: 10, total: 90},
		{name: "zero override is honoured", base: 100, override: &zero, nights: 2, rooms: 1, subtotal: 0, taxes: 0, total: 0},
		{name: "missing base falls back", base: 0, nights: 1, rooms: 1, subtotal: 100, taxes: 12, total: 112},
		{name: "nights floored to one", base: 50, nights: 0, rooms: 1, subtotal: 50, taxes: 6, total: 56},
		{name: "fractional subtotal kept", base: 99.5, nights: 1, rooms: 1, subtotal: 99.5, taxes: 12, total: 111.5},
	}

	calc := NewPricingCalculator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.Price(tc.base, tc.override, tc.nights, tc.rooms)
			if got.Subtotal != tc.subtotal || got.Taxes != tc.taxes || got.Total != tc.total {
				t.Fatalf("expected %v/%v/%v, got %v/%v/%v", tc.subtotal, tc.taxes, tc.total, got.Subtotal, got.Taxes, got.Total)
			}
			if got.TaxRate != 0.12 {
				t.Fatalf("expected tax rate 0.12, got %v", got.TaxRate)
			}
		})
	}
}

func TestPricingIdentity(t *testing.T) {
	t.Parallel()

	calc := NewPricingCalculator()
	for _, price := range []float64{1, 37, 100, 149.99, 250} {
		for nights := 1; nights <= 14; nights++ {
			for rooms := 1; rooms <= 4; rooms++ {
				got := calc.Price(price, nil, nights, rooms)
				subtotal := price * float64(nights) * float64(rooms)
				if got.Subtotal != subtotal {
					t.Fatalf("subtotal mismatch for %v/%d/%d: %v", price, nights, rooms, got.Subtotal)
				}
				if got.Total != got.Subtotal+got.Taxes {
					t.Fatalf("total is not subtotal + taxes: %#v", got)
				}
				if math.Abs(got.Total-subtotal*1.12) > 0.5+1e-9 {
					t.Fatalf("total %v too far from %v", got.Total, subtotal*1.12)
				}
			}
		}
	}
}
