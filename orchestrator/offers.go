package main

import (
	"fmt"
	"math"

	restate "github.com/restatedev/sdk-go"

	"github.com/o001705/EF/config"
)

// nominalRates is the base catalog rate per offer id, before the loyalty
// discount. Business-logic placeholder; swapping it does not affect the
// protocol.
var nominalRates = map[int]float64{
	1: 9.8,
	2: 11.5,
	3: 10.2,
	4: 9.5,
}

const defaultNominalRate = 11.5

// enrichOffers fetches the shopper's loyalty balance and prices the
// ledger's offer list with it.
func enrichOffers(ctx restate.ObjectContext, txn Transaction, offers []Offer) ([]EnrichedOffer, error) {
	loyalty, err := restate.Object[LedgerLoyaltyResult](
		ctx, ledgerService, txn.PhoneNumber, "GetLoyaltyPoints",
	).Request(restate.Void{})
	if err != nil {
		return nil, fmt.Errorf("loyalty lookup failed: %w", err)
	}

	return priceOffers(offers, loyalty.Points, txn.Amount), nil
}

// priceOffers prices each offer for the shopper: loyalty discount off
// the nominal rate plus a simple-interest EMI on the principal.
func priceOffers(offers []Offer, points int, principal float64) []EnrichedOffer {
	discount := loyaltyDiscount(points)
	if principal <= 0 {
		principal = config.DefaultPrincipal
	}

	enriched := make([]EnrichedOffer, 0, len(offers))
	for _, o := range offers {
		rate, ok := nominalRates[o.OfferID]
		if !ok {
			rate = defaultNominalRate
		}
		rate = round2(rate - discount)

		enriched = append(enriched, EnrichedOffer{
			OfferID:      o.OfferID,
			Description:  o.Description,
			InterestRate: rate,
			TenureMonths: config.DefaultTenureMonths,
			EMIAmount:    round2(emi(principal, rate, config.DefaultTenureMonths)),
		})
	}
	return enriched
}

// loyaltyDiscount converts a points balance to a rate discount in
// percentage points, capped regardless of balance size.
func loyaltyDiscount(points int) float64 {
	if points < 0 {
		return 0
	}
	return math.Min(float64(points)*config.LoyaltyDiscountPerPoint, config.MaxLoyaltyDiscount)
}

// emi is the simple-interest amortization used by the demo:
// principal * (1 + rate * tenure / 1200) / tenure.
func emi(principal, rate float64, tenureMonths int) float64 {
	tenure := float64(tenureMonths)
	return principal * (1 + rate*tenure/1200) / tenure
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
