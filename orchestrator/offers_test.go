package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoyaltyDiscount_MonotoneAndCapped(t *testing.T) {
	assert.Equal(t, 0.0, loyaltyDiscount(0))
	assert.InDelta(t, 0.5, loyaltyDiscount(50), 1e-9)
	assert.InDelta(t, 1.0, loyaltyDiscount(100), 1e-9)

	// Capped at 1.0 percentage point regardless of balance: 200 points
	// is still a 1.0 discount, not 2.0.
	assert.InDelta(t, 1.0, loyaltyDiscount(200), 1e-9)
	assert.InDelta(t, 1.0, loyaltyDiscount(100000), 1e-9)

	// Monotonically non-decreasing.
	prev := 0.0
	for points := 0; points <= 300; points += 10 {
		d := loyaltyDiscount(points)
		assert.GreaterOrEqual(t, d, prev, "discount decreased at %d points", points)
		prev = d
	}

	assert.Equal(t, 0.0, loyaltyDiscount(-5))
}

func TestEMI_SimpleInterestAmortization(t *testing.T) {
	// principal * (1 + rate * tenure / 1200) / tenure
	// 12000 * (1 + 10.2 * 12 / 1200) / 12 = 1102
	assert.InDelta(t, 1102.0, emi(12000, 10.2, 12), 0.01)

	// Zero rate degenerates to principal / tenure.
	assert.InDelta(t, 1000.0, emi(12000, 0, 12), 1e-9)
}

func TestPriceOffers(t *testing.T) {
	offers := []Offer{
		{OfferID: 1, Description: "Offer 1: Low Interest EMI"},
		{OfferID: 99, Description: "Uncataloged"},
	}

	// 50 points = 0.5 discount; zero principal falls back to the demo
	// default of 12000.
	priced := priceOffers(offers, 50, 0)
	require.Len(t, priced, 2)

	assert.Equal(t, 9.3, priced[0].InterestRate)
	assert.Equal(t, 12, priced[0].TenureMonths)
	// 12000 * (1 + 9.3*12/1200) / 12 = 1093
	assert.InDelta(t, 1093.0, priced[0].EMIAmount, 0.01)

	// Unknown offer ids price at the default nominal rate.
	assert.Equal(t, 11.0, priced[1].InterestRate)
	assert.InDelta(t, 1110.0, priced[1].EMIAmount, 0.01)
}

func TestPriceOffers_EmptyList(t *testing.T) {
	assert.Empty(t, priceOffers(nil, 1000, 5000))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.46, round2(10.456))
	assert.Equal(t, 10.45, round2(10.454))
	assert.Equal(t, 11.5, round2(11.5))
}
