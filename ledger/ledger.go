package main

import (
	"fmt"

	restate "github.com/restatedev/sdk-go"

	"github.com/o001705/EF/config"
)

// Ledger is the bank backend: the single source of truth for customer,
// credit, loyalty, and offer data. It is a virtual object keyed by phone
// number, so all writes for one customer are serialized.
type Ledger struct{}

const (
	stateKeyCustomer = "customer"
	stateKeyScore    = "creditScore"
	stateKeyLoyalty  = "loyaltyPoints"
)

// GetCustomer returns the customer record, or a 404 for unknown phones.
func (Ledger) GetCustomer(
	ctx restate.ObjectSharedContext,
	_ restate.Void,
) (Customer, error) {
	customer, err := restate.Get[*Customer](ctx, stateKeyCustomer)
	if err != nil {
		return Customer{}, err
	}
	if customer == nil {
		return Customer{}, restate.TerminalError(
			fmt.Errorf("customer not found"), 404)
	}

	return *customer, nil
}

// FindCustomer is the lookup used by the orchestrator: it returns nil
// instead of an error for unknown phones, so callers can branch on
// "known customer" without unpacking a terminal error.
func (Ledger) FindCustomer(
	ctx restate.ObjectSharedContext,
	_ restate.Void,
) (*Customer, error) {
	return restate.Get[*Customer](ctx, stateKeyCustomer)
}

// VerifyKYC upserts a verified customer record. There is no external KYC
// provider in this design; verification always succeeds.
func (Ledger) VerifyKYC(
	ctx restate.ObjectContext,
	req KYCRequest,
) (KYCResult, error) {
	phone := restate.Key(ctx)
	ctx.Log().Info("Verifying KYC", "phone", phone, "name", req.Name)

	customer, err := restate.Get[Customer](ctx, stateKeyCustomer)
	if err != nil {
		return KYCResult{}, err
	}

	updated, err := applyKYC(customer, phone, req)
	if err != nil {
		return KYCResult{}, err
	}
	restate.Set(ctx, stateKeyCustomer, updated)

	return KYCResult{Status: "KYC Success"}, nil
}

// applyKYC validates the submitted identity details and upserts them
// onto the stored record, marking it verified. Fields not carried by
// the request (credit score) survive the upsert.
func applyKYC(customer Customer, phone string, req KYCRequest) (Customer, error) {
	if req.GovtID == "" || req.Name == "" {
		return Customer{}, restate.TerminalError(
			fmt.Errorf("govt_id and name are required"), 400)
	}

	customer.PhoneNumber = phone
	customer.GovtID = req.GovtID
	customer.Name = req.Name
	customer.Address = req.Address
	customer.KYCVerified = true
	return customer, nil
}

// CheckCredit returns the cached bureau score, generating and persisting
// one on first call so repeated checks for the same phone are stable.
func (Ledger) CheckCredit(
	ctx restate.ObjectContext,
	_ restate.Void,
) (CreditResult, error) {
	phone := restate.Key(ctx)

	cached, err := restate.Get[*int](ctx, stateKeyScore)
	if err != nil {
		return CreditResult{}, err
	}
	if cached != nil {
		return CreditResult{CreditScore: *cached}, nil
	}

	score := scoreFromUnit(restate.Rand(ctx).Float64())
	restate.Set(ctx, stateKeyScore, score)

	ctx.Log().Info("Generated bureau score", "phone", phone, "score", score)

	return CreditResult{CreditScore: score}, nil
}

// scoreFromUnit maps a uniform [0,1) sample onto the bureau score
// range, both bounds inclusive.
func scoreFromUnit(u float64) int {
	span := config.CreditScoreMax - config.CreditScoreMin + 1
	return config.CreditScoreMin + int(u*float64(span))
}

// GetLoanOffers returns the eligible offers for the current score. The
// amount parameter is accepted but does not influence eligibility; this
// mirrors documented product behavior, not an oversight in the rules.
func (Ledger) GetLoanOffers(
	ctx restate.ObjectSharedContext,
	req OffersRequest,
) ([]Offer, error) {
	score, err := currentScore(ctx)
	if err != nil {
		return nil, err
	}

	offers := buildOffers(eligibleOfferIDs(score))
	ctx.Log().Info("Loan offers computed",
		"phone", restate.Key(ctx),
		"score", score,
		"count", len(offers))

	return offers, nil
}

// GetPersonalizedOffers returns the base offers plus the loyalty bonus
// offer for customers above the points threshold.
func (Ledger) GetPersonalizedOffers(
	ctx restate.ObjectSharedContext,
	_ restate.Void,
) ([]Offer, error) {
	score, err := currentScore(ctx)
	if err != nil {
		return nil, err
	}
	points, err := restate.Get[int](ctx, stateKeyLoyalty)
	if err != nil {
		return nil, err
	}

	return personalizeOffers(score, points), nil
}

// GetLoyaltyPoints returns the points balance, zero for unknown phones.
func (Ledger) GetLoyaltyPoints(
	ctx restate.ObjectSharedContext,
	_ restate.Void,
) (LoyaltyResult, error) {
	points, err := restate.Get[int](ctx, stateKeyLoyalty)
	if err != nil {
		return LoyaltyResult{}, err
	}
	return LoyaltyResult{Points: points}, nil
}

// SetCreditScore overwrites the cached bureau score for the phone.
// Admin surface for seeding demo fixtures; CheckCredit never calls it.
func (Ledger) SetCreditScore(
	ctx restate.ObjectContext,
	score int,
) error {
	if score < 0 {
		return restate.TerminalError(
			fmt.Errorf("score must be non-negative"), 400)
	}
	restate.Set(ctx, stateKeyScore, score)
	return nil
}

// GrantLoyaltyPoints sets the customer's points balance. Used to seed
// demo balances; a real program would accrue instead of overwrite.
func (Ledger) GrantLoyaltyPoints(
	ctx restate.ObjectContext,
	points int,
) error {
	if points < 0 {
		return restate.TerminalError(
			fmt.Errorf("points must be non-negative"), 400)
	}
	restate.Set(ctx, stateKeyLoyalty, points)
	return nil
}

// OnboardCustomer upserts the customer record and seeds the bureau score
// cache with the supplied score. Idempotent by key.
func (Ledger) OnboardCustomer(
	ctx restate.ObjectContext,
	customer Customer,
) (KYCResult, error) {
	phone := restate.Key(ctx)
	ctx.Log().Info("Onboarding customer", "phone", phone, "score", customer.CreditScore)

	customer.PhoneNumber = phone
	restate.Set(ctx, stateKeyCustomer, customer)
	restate.Set(ctx, stateKeyScore, customer.CreditScore)

	return KYCResult{Status: "Customer onboarded"}, nil
}

// OriginateLoan succeeds iff the phone belongs to a known customer. The
// offer id is not checked against the catalog; existence of the customer
// is the authoritative signal, so an unknown offer id still originates.
func (Ledger) OriginateLoan(
	ctx restate.ObjectContext,
	req LoanRequest,
) (LoanResult, error) {
	phone := restate.Key(ctx)

	customer, err := restate.Get[*Customer](ctx, stateKeyCustomer)
	if err != nil {
		return LoanResult{}, err
	}

	result := loanOutcome(customer)
	if customer == nil {
		ctx.Log().Warn("Origination declined, unknown customer", "phone", phone)
		return result, nil
	}

	ctx.Log().Info("Loan originated",
		"phone", phone,
		"offerId", req.OfferID,
		"amount", req.Amount)

	return result, nil
}

// loanOutcome maps customer existence to the origination verdict; the
// offer id carries no weight in the decision.
func loanOutcome(customer *Customer) LoanResult {
	if customer == nil {
		return LoanResult{Status: "Loan Failed"}
	}
	return LoanResult{Status: "Loan Originated"}
}

func currentScore(ctx restate.ObjectSharedContext) (int, error) {
	cached, err := restate.Get[*int](ctx, stateKeyScore)
	if err != nil {
		return 0, err
	}
	return scoreOrDefault(cached), nil
}

// scoreOrDefault falls back to the assumed score for phones with no
// cached bureau pull.
func scoreOrDefault(cached *int) int {
	if cached == nil {
		return config.DefaultCreditScore
	}
	return *cached
}
