package main

import "github.com/o001705/EF/config"

// offerCatalog is the demo offer book. Descriptions are placeholders;
// the catalog content is outside this service's contract.
var offerCatalog = map[int]string{
	1: "Offer 1: Low Interest EMI",
	2: "Offer 2: Cashback Offer",
	3: "Offer 3: No Cost EMI",
	4: "Loyalty Bonus EMI Offer",
}

const loyaltyBonusOfferID = 4

// eligibleOfferIDs maps a bureau score to the offer ids the customer
// qualifies for. Deterministic in the score alone.
func eligibleOfferIDs(score int) []int {
	switch {
	case score < config.MinEligibleScore:
		return nil
	case score >= config.PrimeScore:
		return []int{1, 2}
	default:
		return []int{2, 3}
	}
}

func buildOffers(ids []int) []Offer {
	offers := make([]Offer, 0, len(ids))
	for _, id := range ids {
		offers = append(offers, Offer{OfferID: id, Description: offerCatalog[id]})
	}
	return offers
}

// personalizeOffers appends the loyalty bonus offer to the eligible set
// for customers above the points threshold.
func personalizeOffers(score, points int) []Offer {
	offers := buildOffers(eligibleOfferIDs(score))
	if points > config.LoyaltyBonusThreshold {
		offers = append(offers, Offer{
			OfferID:     loyaltyBonusOfferID,
			Description: offerCatalog[loyaltyBonusOfferID],
		})
	}
	return offers
}
