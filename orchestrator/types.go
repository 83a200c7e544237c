package main

// Transaction statuses, in state-machine order. A transaction only moves
// forward through these, except that FAILURE may be entered from any
// non-terminal state.
const (
	StatusCreated         = "CREATED"
	StatusPhoneCaptured   = "PHONE_CAPTURED"
	StatusKYCPending      = "KYC_PENDING"
	StatusKYCDone         = "KYC_DONE"
	StatusOffersPresented = "OFFERS_PRESENTED"
	StatusOriginating     = "ORIGINATING"
	StatusSuccess         = "SUCCESS"
	StatusFailure         = "FAILURE"
)

// statusRank orders the states; advance refuses to move backwards.
var statusRank = map[string]int{
	StatusCreated:         0,
	StatusPhoneCaptured:   1,
	StatusKYCPending:      2,
	StatusKYCDone:         3,
	StatusOffersPresented: 4,
	StatusOriginating:     5,
	StatusSuccess:         6,
	StatusFailure:         6,
}

// Transaction is the checkout context carried across service boundaries
// by its opaque id. It lives only as long as the orchestrator's state for
// the key and is retrievable for every subsequent step.
type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	ProductID     string  `json:"product_id"`
	Amount        float64 `json:"amount"`
	CallbackURL   string  `json:"callback_url"`
	PhoneNumber   string  `json:"phone_number,omitempty"`
	Status        string  `json:"status"`
}

// StartRequest opens a checkout session for the keyed transaction id.
type StartRequest struct {
	ProductID   string  `json:"product_id"`
	Amount      float64 `json:"amount"`
	CallbackURL string  `json:"callback_url"`
}

// CapturePhoneRequest binds the shopper's phone to the transaction.
type CapturePhoneRequest struct {
	PhoneNumber string  `json:"phone_number"`
	Amount      float64 `json:"amount,omitempty"`
}

// SubmitKYCRequest carries the identity details for an unknown shopper.
type SubmitKYCRequest struct {
	GovtID  string `json:"govt_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// SelectOfferRequest accepts one of the presented offers.
type SelectOfferRequest struct {
	OfferID int `json:"offer_id"`
}

// FlowResult is the shopper-facing response for every flow step.
type FlowResult struct {
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	KYCRequired   bool            `json:"kyc_required,omitempty"`
	Message       string          `json:"message,omitempty"`
	Offers        []EnrichedOffer `json:"offers,omitempty"`
}

// Offer mirrors the ledger's wire format for an eligible offer.
type Offer struct {
	OfferID     int    `json:"offer_id"`
	Description string `json:"description"`
}

// EnrichedOffer adds the computed pricing fields from the
// offer-aggregation path.
type EnrichedOffer struct {
	OfferID      int     `json:"offer_id"`
	Description  string  `json:"description"`
	InterestRate float64 `json:"interest_rate"`
	TenureMonths int     `json:"tenure_months"`
	EMIAmount    float64 `json:"emi_amount"`
}

// Ledger wire types used by the orchestrator's outbound calls.
type (
	LedgerCustomer struct {
		PhoneNumber string `json:"phone_number"`
		Name        string `json:"name"`
		GovtID      string `json:"govt_id"`
		Address     string `json:"address,omitempty"`
		CreditScore int    `json:"credit_score"`
		KYCVerified bool   `json:"kyc_verified"`
	}

	LedgerKYCRequest struct {
		GovtID  string `json:"govt_id"`
		Name    string `json:"name"`
		Address string `json:"address"`
	}

	LedgerKYCResult struct {
		Status string `json:"status"`
	}

	LedgerCreditResult struct {
		CreditScore int `json:"credit_score"`
	}

	LedgerOffersRequest struct {
		Amount float64 `json:"amount"`
	}

	LedgerLoanRequest struct {
		OfferID int     `json:"offer_id"`
		Amount  float64 `json:"amount"`
	}

	LedgerLoanResult struct {
		Status string `json:"status"`
	}

	LedgerLoyaltyResult struct {
		Points int `json:"points"`
	}
)

// NotificationRequest is handed to the Notifier for durable delivery.
type NotificationRequest struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	CallbackURL   string `json:"callback_url"`
}

// NotificationRecord is what the Notifier remembers about a delivery.
type NotificationRecord struct {
	Status      string `json:"status"`
	CallbackURL string `json:"callback_url"`
	Delivered   bool   `json:"delivered"`
}
