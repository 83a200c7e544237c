package main

import (
	"fmt"

	restate "github.com/restatedev/sdk-go"
)

// LoanTransaction owns the checkout transaction state machine. It is a
// virtual object keyed by transaction id, so concurrent requests for the
// same checkout are serialized and cannot interleave ledger calls.
type LoanTransaction struct{}

const (
	stateKeyTxn = "txn"

	ledgerService   = "Ledger"
	notifierService = "Notifier"
)

// Outcome statuses asserted to the merchant. Lowercase on the wire.
const (
	NotifySuccess = "success"
	NotifyFailure = "failure"
)

// Start opens the session with the static checkout context. Re-invoking
// for an existing transaction returns the stored context unchanged.
func (LoanTransaction) Start(
	ctx restate.ObjectContext,
	req StartRequest,
) (Transaction, error) {
	txnID := restate.Key(ctx)

	existing, err := restate.Get[*Transaction](ctx, stateKeyTxn)
	if err != nil {
		return Transaction{}, err
	}
	if existing != nil {
		ctx.Log().Info("Session already started", "transactionId", txnID)
		return *existing, nil
	}

	txn, err := newTransaction(txnID, req)
	if err != nil {
		return Transaction{}, err
	}
	restate.Set(ctx, stateKeyTxn, txn)

	ctx.Log().Info("Session started",
		"transactionId", txnID,
		"productId", req.ProductID,
		"amount", req.Amount)

	return txn, nil
}

// newTransaction validates the opening request and builds the stored
// context for the keyed id.
func newTransaction(id string, req StartRequest) (Transaction, error) {
	if req.CallbackURL == "" {
		return Transaction{}, restate.TerminalError(
			fmt.Errorf("callback_url is required"), 400)
	}

	return Transaction{
		TransactionID: id,
		ProductID:     req.ProductID,
		Amount:        req.Amount,
		CallbackURL:   req.CallbackURL,
		Status:        StatusCreated,
	}, nil
}

// CapturePhone binds the shopper's phone to the transaction and routes
// the flow: known verified customers go straight to offers, unknown
// phones are asked for KYC.
func (LoanTransaction) CapturePhone(
	ctx restate.ObjectContext,
	req CapturePhoneRequest,
) (FlowResult, error) {
	txn, err := loadTransaction(ctx)
	if err != nil {
		return FlowResult{}, err
	}
	if req.PhoneNumber == "" {
		return FlowResult{}, restate.TerminalError(
			fmt.Errorf("phone_number is required"), 400)
	}

	txn.PhoneNumber = req.PhoneNumber
	if req.Amount > 0 {
		txn.Amount = req.Amount
	}
	if err := advance(ctx, &txn, StatusPhoneCaptured); err != nil {
		return FlowResult{}, err
	}

	customer, err := restate.Object[*LedgerCustomer](
		ctx, ledgerService, req.PhoneNumber, "FindCustomer",
	).Request(restate.Void{})
	if err != nil {
		return FlowResult{}, fmt.Errorf("ledger lookup failed: %w", err)
	}

	if customer == nil || !customer.KYCVerified {
		if err := advance(ctx, &txn, StatusKYCPending); err != nil {
			return FlowResult{}, err
		}
		ctx.Log().Info("KYC required", "transactionId", txn.TransactionID)
		return FlowResult{
			TransactionID: txn.TransactionID,
			Status:        txn.Status,
			KYCRequired:   true,
			Message:       "Customer unknown, KYC details required",
		}, nil
	}

	if err := advance(ctx, &txn, StatusKYCDone); err != nil {
		return FlowResult{}, err
	}

	offers, err := restate.Object[[]Offer](
		ctx, ledgerService, txn.PhoneNumber, "GetPersonalizedOffers",
	).Request(restate.Void{})
	if err != nil {
		return FlowResult{}, fmt.Errorf("offer retrieval failed: %w", err)
	}

	return presentOffers(ctx, txn, offers)
}

// SubmitKYC runs verification, credit check, and onboarding in that
// fixed order; the bureau score must exist before the customer record is
// onboarded with it. An empty offer list fails the transaction and
// notifies the merchant in the same call.
func (LoanTransaction) SubmitKYC(
	ctx restate.ObjectContext,
	req SubmitKYCRequest,
) (FlowResult, error) {
	txn, err := loadTransaction(ctx)
	if err != nil {
		return FlowResult{}, err
	}
	if txn.PhoneNumber == "" {
		return FlowResult{}, restate.TerminalError(
			fmt.Errorf("phone not captured for transaction"), 400)
	}
	if req.GovtID == "" || req.Name == "" {
		return FlowResult{}, restate.TerminalError(
			fmt.Errorf("govt_id and name are required"), 400)
	}

	phone := txn.PhoneNumber

	_, err = restate.Object[LedgerKYCResult](
		ctx, ledgerService, phone, "VerifyKYC",
	).Request(LedgerKYCRequest{GovtID: req.GovtID, Name: req.Name, Address: req.Address})
	if err != nil {
		return FlowResult{}, fmt.Errorf("kyc verification failed: %w", err)
	}

	credit, err := restate.Object[LedgerCreditResult](
		ctx, ledgerService, phone, "CheckCredit",
	).Request(restate.Void{})
	if err != nil {
		return FlowResult{}, fmt.Errorf("credit check failed: %w", err)
	}
	ctx.Log().Info("Credit score received",
		"transactionId", txn.TransactionID,
		"score", credit.CreditScore)

	_, err = restate.Object[LedgerKYCResult](
		ctx, ledgerService, phone, "OnboardCustomer",
	).Request(LedgerCustomer{
		PhoneNumber: phone,
		Name:        req.Name,
		GovtID:      req.GovtID,
		Address:     req.Address,
		CreditScore: credit.CreditScore,
		KYCVerified: true,
	})
	if err != nil {
		return FlowResult{}, fmt.Errorf("onboarding failed: %w", err)
	}

	if err := advance(ctx, &txn, StatusKYCDone); err != nil {
		return FlowResult{}, err
	}

	offers, err := restate.Object[[]Offer](
		ctx, ledgerService, phone, "GetLoanOffers",
	).Request(LedgerOffersRequest{Amount: txn.Amount})
	if err != nil {
		return FlowResult{}, fmt.Errorf("offer retrieval failed: %w", err)
	}

	return presentOffers(ctx, txn, offers)
}

// SelectOffer originates the loan for the stored phone and amount, maps
// the ledger's outcome to the terminal status, and emits exactly one
// notification reflecting it. An unknown transaction id is a client
// error, distinct from an origination decline.
func (LoanTransaction) SelectOffer(
	ctx restate.ObjectContext,
	req SelectOfferRequest,
) (FlowResult, error) {
	stored, err := restate.Get[*Transaction](ctx, stateKeyTxn)
	if err != nil {
		return FlowResult{}, err
	}
	if err := checkSelectable(stored); err != nil {
		return FlowResult{}, err
	}
	txn := *stored

	if err := advance(ctx, &txn, StatusOriginating); err != nil {
		return FlowResult{}, err
	}

	loan, err := restate.Object[LedgerLoanResult](
		ctx, ledgerService, txn.PhoneNumber, "OriginateLoan",
	).Request(LedgerLoanRequest{OfferID: req.OfferID, Amount: txn.Amount})
	if err != nil {
		return FlowResult{}, fmt.Errorf("origination failed: %w", err)
	}

	outcome := NotifyFailure
	final := StatusFailure
	if loan.Status == "Loan Originated" {
		outcome = NotifySuccess
		final = StatusSuccess
	}

	if err := advance(ctx, &txn, final); err != nil {
		return FlowResult{}, err
	}
	notifyMerchant(ctx, txn, outcome)

	ctx.Log().Info("Transaction finalized",
		"transactionId", txn.TransactionID,
		"status", final)

	return FlowResult{
		TransactionID: txn.TransactionID,
		Status:        final,
		Message:       loan.Status,
	}, nil
}

// checkSelectable gates origination: the session must exist, must not
// be finalized, and must actually have offers on the table. Every
// status the shopper walked through stays observable; origination
// cannot jump the queue from an earlier state.
func checkSelectable(txn *Transaction) error {
	if txn == nil {
		return restate.TerminalError(
			fmt.Errorf("session not found"), 404)
	}

	switch {
	case txn.Status == StatusSuccess || txn.Status == StatusFailure:
		return restate.TerminalError(
			fmt.Errorf("transaction already finalized: %s", txn.Status), 409)
	case txn.Status != StatusOffersPresented:
		return restate.TerminalError(
			fmt.Errorf("no offers presented yet: %s", txn.Status), 409)
	case txn.PhoneNumber == "":
		return restate.TerminalError(
			fmt.Errorf("phone not captured for transaction"), 400)
	}
	return nil
}

// GetTransaction returns the current snapshot for the keyed transaction.
func (LoanTransaction) GetTransaction(
	ctx restate.ObjectSharedContext,
	_ restate.Void,
) (Transaction, error) {
	txn, err := restate.Get[*Transaction](ctx, stateKeyTxn)
	if err != nil {
		return Transaction{}, err
	}
	if txn == nil {
		return Transaction{}, restate.TerminalError(
			fmt.Errorf("session not found"), 404)
	}
	return *txn, nil
}

// FindTransaction returns the stored context, nil for ids the
// orchestrator has never seen, so the facade can answer polls with a
// proper not-found instead of a gateway error.
func (LoanTransaction) FindTransaction(
	ctx restate.ObjectSharedContext,
	_ restate.Void,
) (*Transaction, error) {
	return restate.Get[*Transaction](ctx, stateKeyTxn)
}

// presentOffers finishes the offer-retrieval leg shared by CapturePhone
// and SubmitKYC: an empty list fails the transaction and notifies the
// merchant before responding.
func presentOffers(ctx restate.ObjectContext, txn Transaction, offers []Offer) (FlowResult, error) {
	if len(offers) == 0 {
		if err := advance(ctx, &txn, StatusFailure); err != nil {
			return FlowResult{}, err
		}
		notifyMerchant(ctx, txn, NotifyFailure)

		ctx.Log().Warn("No eligible offers", "transactionId", txn.TransactionID)
		return FlowResult{
			TransactionID: txn.TransactionID,
			Status:        StatusFailure,
			Message:       "No eligible loan offers found. Merchant notified.",
		}, nil
	}

	enriched, err := enrichOffers(ctx, txn, offers)
	if err != nil {
		return FlowResult{}, err
	}

	if err := advance(ctx, &txn, StatusOffersPresented); err != nil {
		return FlowResult{}, err
	}

	return FlowResult{
		TransactionID: txn.TransactionID,
		Status:        StatusOffersPresented,
		Message:       "Choose from personalized offers with loyalty benefit",
		Offers:        enriched,
	}, nil
}

// notifyMerchant hands the terminal status to the Notifier with a
// durable one-way send. Delivery is asynchronous and retried by the
// runtime; it does not change the response already being returned.
func notifyMerchant(ctx restate.ObjectContext, txn Transaction, outcome string) {
	restate.ObjectSend(ctx, notifierService, txn.TransactionID, "Deliver").
		Send(NotificationRequest{
			TransactionID: txn.TransactionID,
			Status:        outcome,
			CallbackURL:   txn.CallbackURL,
		})
}

// loadTransaction fetches the stored context or rejects the call when no
// session exists for the key.
func loadTransaction(ctx restate.ObjectContext) (Transaction, error) {
	txn, err := restate.Get[*Transaction](ctx, stateKeyTxn)
	if err != nil {
		return Transaction{}, err
	}
	if txn == nil {
		return Transaction{}, restate.TerminalError(
			fmt.Errorf("session not found: %s", restate.Key(ctx)), 404)
	}
	return *txn, nil
}

// advance moves the transaction to next and persists it.
func advance(ctx restate.ObjectContext, txn *Transaction, next string) error {
	if err := transition(txn.Status, next); err != nil {
		return err
	}

	txn.Status = next
	restate.Set(ctx, stateKeyTxn, *txn)
	return nil
}

// transition enforces the state machine: only forward moves, FAILURE
// reachable from any non-terminal state, terminal states frozen.
func transition(cur, next string) error {
	if cur == StatusSuccess || cur == StatusFailure {
		return restate.TerminalError(
			fmt.Errorf("transaction already terminal: %s", cur), 409)
	}
	if next != StatusFailure && statusRank[next] < statusRank[cur] {
		return restate.TerminalError(
			fmt.Errorf("illegal transition %s -> %s", cur, next), 409)
	}
	return nil
}
