package main

// Wire types mirrored from the bank services. The ingress only shuttles
// JSON between the REST surface and the Restate handlers.

type Customer struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	GovtID      string `json:"govt_id"`
	Address     string `json:"address,omitempty"`
	CreditScore int    `json:"credit_score"`
	KYCVerified bool   `json:"kyc_verified"`
}

type KYCRequest struct {
	PhoneNumber string `json:"phone_number"`
	GovtID      string `json:"govt_id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
}

type StatusResult struct {
	Status string `json:"status"`
}

type CreditResult struct {
	CreditScore int `json:"credit_score"`
}

type Offer struct {
	OfferID     int    `json:"offer_id"`
	Description string `json:"description"`
}

type OffersRequest struct {
	Amount float64 `json:"amount"`
}

type LoanRequest struct {
	PhoneNumber string  `json:"phone_number"`
	OfferID     int     `json:"offer_id"`
	Amount      float64 `json:"amount"`
}

type ScoreRequest struct {
	PhoneNumber string `json:"phone_number"`
	CreditScore int    `json:"credit_score"`
}

type LoyaltyRequest struct {
	PhoneNumber string `json:"phone_number"`
	Points      int    `json:"points"`
}

type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	ProductID     string  `json:"product_id"`
	Amount        float64 `json:"amount"`
	CallbackURL   string  `json:"callback_url"`
	PhoneNumber   string  `json:"phone_number,omitempty"`
	Status        string  `json:"status"`
}

type StartRequest struct {
	ProductID   string  `json:"product_id"`
	Amount      float64 `json:"amount"`
	CallbackURL string  `json:"callback_url"`
}

type CapturePhoneRequest struct {
	PhoneNumber string  `json:"phone_number"`
	Amount      float64 `json:"amount,omitempty"`
}

type SubmitKYCRequest struct {
	GovtID  string `json:"govt_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type SelectOfferRequest struct {
	OfferID int `json:"offer_id"`
}

type EnrichedOffer struct {
	OfferID      int     `json:"offer_id"`
	Description  string  `json:"description"`
	InterestRate float64 `json:"interest_rate"`
	TenureMonths int     `json:"tenure_months"`
	EMIAmount    float64 `json:"emi_amount"`
}

type FlowResult struct {
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	KYCRequired   bool            `json:"kyc_required,omitempty"`
	Message       string          `json:"message,omitempty"`
	Offers        []EnrichedOffer `json:"offers,omitempty"`
}
