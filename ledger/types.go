package main

// Customer is the bank's record for one phone number. KYC and onboarding
// both upsert it; it is never deleted.
type Customer struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	GovtID      string `json:"govt_id"`
	Address     string `json:"address,omitempty"`
	CreditScore int    `json:"credit_score"`
	KYCVerified bool   `json:"kyc_verified"`
}

// KYCRequest carries the identity details collected at checkout.
type KYCRequest struct {
	GovtID  string `json:"govt_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// KYCResult is the fixed-success verification outcome.
type KYCResult struct {
	Status string `json:"status"`
}

// CreditResult reports the (cached) bureau score.
type CreditResult struct {
	CreditScore int `json:"credit_score"`
}

// Offer is one entry of the eligible offer list. Offers are derived on
// each request from customer state, never persisted.
type Offer struct {
	OfferID     int    `json:"offer_id"`
	Description string `json:"description"`
}

// OffersRequest asks for the eligible offers for a loan amount. The
// amount is accepted but currently unused in eligibility; the rules key
// off the credit score alone.
type OffersRequest struct {
	Amount float64 `json:"amount"`
}

// LoanRequest asks the bank to originate a loan.
type LoanRequest struct {
	OfferID int     `json:"offer_id"`
	Amount  float64 `json:"amount"`
}

// LoanResult is the authoritative origination outcome.
type LoanResult struct {
	Status string `json:"status"`
}

// LoyaltyResult reports the customer's points balance.
type LoyaltyResult struct {
	Points int `json:"points"`
}
