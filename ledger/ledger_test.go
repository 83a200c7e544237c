package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o001705/EF/config"
)

func TestApplyKYC_UpsertsVerifiedRecord(t *testing.T) {
	customer, err := applyKYC(Customer{}, "5550003333", KYCRequest{
		GovtID:  "ID123456789",
		Name:    "John Doe",
		Address: "42 Main St",
	})
	require.NoError(t, err)

	assert.Equal(t, "5550003333", customer.PhoneNumber)
	assert.Equal(t, "John Doe", customer.Name)
	assert.Equal(t, "ID123456789", customer.GovtID)
	assert.True(t, customer.KYCVerified)
}

func TestApplyKYC_PreservesExistingScore(t *testing.T) {
	existing := Customer{PhoneNumber: "5550003333", CreditScore: 712}

	customer, err := applyKYC(existing, "5550003333", KYCRequest{
		GovtID: "ID1",
		Name:   "John Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, 712, customer.CreditScore)
}

func TestApplyKYC_MissingFields(t *testing.T) {
	_, err := applyKYC(Customer{}, "5550004444", KYCRequest{Name: "No ID"})
	require.Error(t, err)

	_, err = applyKYC(Customer{}, "5550004444", KYCRequest{GovtID: "ID1"})
	require.Error(t, err)
}

func TestScoreFromUnit_StaysInRange(t *testing.T) {
	assert.Equal(t, config.CreditScoreMin, scoreFromUnit(0))

	for i := 0; i < 1000; i++ {
		score := scoreFromUnit(float64(i) / 1000)
		require.GreaterOrEqual(t, score, config.CreditScoreMin)
		require.LessOrEqual(t, score, config.CreditScoreMax)
	}
}

func TestScoreOrDefault(t *testing.T) {
	assert.Equal(t, config.DefaultCreditScore, scoreOrDefault(nil))

	cached := 612
	assert.Equal(t, 612, scoreOrDefault(&cached))
}

func TestEligibleOfferIDs_ScoreBands(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		wantIDs []int
	}{
		{"below threshold", 540, nil},
		{"just eligible", 550, []int{2, 3}},
		{"mid band", 700, []int{2, 3}},
		{"just under prime", 749, []int{2, 3}},
		{"prime boundary", 750, []int{1, 2}},
		{"prime", 800, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIDs, eligibleOfferIDs(tt.score))
		})
	}
}

func TestBuildOffers_CatalogDescriptions(t *testing.T) {
	offers := buildOffers([]int{2, 3})

	require.Len(t, offers, 2)
	assert.Equal(t, 2, offers[0].OfferID)
	assert.Equal(t, offerCatalog[2], offers[0].Description)
	assert.Equal(t, offerCatalog[3], offers[1].Description)
}

func TestPersonalizeOffers_LoyaltyBonus(t *testing.T) {
	offers := personalizeOffers(760, 1000)

	require.Len(t, offers, 3)
	assert.Equal(t, loyaltyBonusOfferID, offers[2].OfferID)
}

func TestPersonalizeOffers_NoBonusAtThreshold(t *testing.T) {
	offers := personalizeOffers(760, config.LoyaltyBonusThreshold)
	require.Len(t, offers, 2)
}

func TestPersonalizeOffers_BonusSurvivesEmptyBase(t *testing.T) {
	// A sub-eligible score yields no base offers, but a big loyalty
	// balance still earns the bonus offer on its own.
	offers := personalizeOffers(500, 900)

	require.Len(t, offers, 1)
	assert.Equal(t, loyaltyBonusOfferID, offers[0].OfferID)
}

func TestLoanOutcome(t *testing.T) {
	// Origination is judged on customer existence alone: an unknown
	// offer id does not change the verdict.
	known := &Customer{PhoneNumber: "5550010000", KYCVerified: true}
	assert.Equal(t, "Loan Originated", loanOutcome(known).Status)

	assert.Equal(t, "Loan Failed", loanOutcome(nil).Status)
}
