package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	restate "github.com/restatedev/sdk-go"
	restateingress "github.com/restatedev/sdk-go/ingress"

	"github.com/xeipuuv/gojsonschema"
)

const (
	ledgerService      = "Ledger"
	transactionService = "LoanTransaction"
)

// Ingress translates the REST surface into Restate ingress calls.
type Ingress struct {
	client *restateingress.Client
}

// ---------- Ledger endpoints ----------

func (i *Ingress) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	customer, err := restateingress.Object[restate.Void, *Customer](
		i.client, ledgerService, phone, "FindCustomer",
	).Request(r.Context(), restate.Void{})
	if err != nil {
		gatewayError(w, "get customer", err)
		return
	}
	if customer == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Customer not found"})
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (i *Ingress) handleKYC(w http.ResponseWriter, r *http.Request) {
	var req KYCRequest
	if !decodeValidated(w, r, kycLoader, &req) {
		return
	}

	result, err := restateingress.Object[KYCRequest, StatusResult](
		i.client, ledgerService, req.PhoneNumber, "VerifyKYC",
	).Request(r.Context(), req)
	if err != nil {
		gatewayError(w, "kyc", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (i *Ingress) handleCreditCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
	}
	if !decodeValidated(w, r, creditCheckLoader, &req) {
		return
	}

	result, err := restateingress.Object[restate.Void, CreditResult](
		i.client, ledgerService, req.PhoneNumber, "CheckCredit",
	).Request(r.Context(), restate.Void{})
	if err != nil {
		gatewayError(w, "credit check", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (i *Ingress) handleGetOffers(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone_number")
	if phone == "" {
		http.Error(w, "phone_number is required", http.StatusBadRequest)
		return
	}
	amount, _ := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)

	offers, err := restateingress.Object[OffersRequest, []Offer](
		i.client, ledgerService, phone, "GetLoanOffers",
	).Request(r.Context(), OffersRequest{Amount: amount})
	if err != nil {
		gatewayError(w, "get offers", err)
		return
	}
	if offers == nil {
		offers = []Offer{}
	}

	writeJSON(w, http.StatusOK, offers)
}

func (i *Ingress) handlePersonalizedOffers(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone_number")
	if phone == "" {
		http.Error(w, "phone_number is required", http.StatusBadRequest)
		return
	}

	offers, err := restateingress.Object[restate.Void, []Offer](
		i.client, ledgerService, phone, "GetPersonalizedOffers",
	).Request(r.Context(), restate.Void{})
	if err != nil {
		gatewayError(w, "personalized offers", err)
		return
	}
	if offers == nil {
		offers = []Offer{}
	}

	writeJSON(w, http.StatusOK, offers)
}

func (i *Ingress) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var req Customer
	if !decodeValidated(w, r, onboardLoader, &req) {
		return
	}

	result, err := restateingress.Object[Customer, StatusResult](
		i.client, ledgerService, req.PhoneNumber, "OnboardCustomer",
	).Request(r.Context(), req)
	if err != nil {
		gatewayError(w, "onboard", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (i *Ingress) handleOriginate(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if !decodeValidated(w, r, originateLoader, &req) {
		return
	}

	result, err := restateingress.Object[LoanRequest, StatusResult](
		i.client, ledgerService, req.PhoneNumber, "OriginateLoan",
	).Request(r.Context(), req)
	if err != nil {
		gatewayError(w, "originate", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (i *Ingress) handleSetScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decodeValidated(w, r, scoreLoader, &req) {
		return
	}

	_, err := restateingress.Object[int, restate.Void](
		i.client, ledgerService, req.PhoneNumber, "SetCreditScore",
	).Request(r.Context(), req.CreditScore)
	if err != nil {
		gatewayError(w, "set score", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "Score recorded"})
}

func (i *Ingress) handleGrantLoyalty(w http.ResponseWriter, r *http.Request) {
	var req LoyaltyRequest
	if !decodeValidated(w, r, loyaltyLoader, &req) {
		return
	}

	_, err := restateingress.Object[int, restate.Void](
		i.client, ledgerService, req.PhoneNumber, "GrantLoyaltyPoints",
	).Request(r.Context(), req.Points)
	if err != nil {
		gatewayError(w, "grant loyalty", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "Points recorded"})
}

// ---------- Shopper flow endpoints ----------

func (i *Ingress) handleFlowStart(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "txn")

	var req StartRequest
	if !decodeValidated(w, r, flowStartLoader, &req) {
		return
	}

	txn, err := restateingress.Object[StartRequest, Transaction](
		i.client, transactionService, txnID, "Start",
	).Request(r.Context(), req)
	if err != nil {
		gatewayError(w, "flow start", err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

func (i *Ingress) handleFlowPhone(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "txn")

	var req CapturePhoneRequest
	if !decodeValidated(w, r, flowPhoneLoader, &req) {
		return
	}

	result, err := restateingress.Object[CapturePhoneRequest, FlowResult](
		i.client, transactionService, txnID, "CapturePhone",
	).Request(r.Context(), req)
	if err != nil {
		gatewayError(w, "capture phone", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (i *Ingress) handleFlowKYC(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "txn")

	var req SubmitKYCRequest
	if !decodeValidated(w, r, flowKYCLoader, &req) {
		return
	}

	result, err := restateingress.Object[SubmitKYCRequest, FlowResult](
		i.client, transactionService, txnID, "SubmitKYC",
	).Request(r.Context(), req)
	if err != nil {
		gatewayError(w, "submit kyc", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (i *Ingress) handleFlowOffer(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "txn")

	var req SelectOfferRequest
	if !decodeValidated(w, r, flowOfferLoader, &req) {
		return
	}

	result, err := restateingress.Object[SelectOfferRequest, FlowResult](
		i.client, transactionService, txnID, "SelectOffer",
	).Request(r.Context(), req)
	if err != nil {
		gatewayError(w, "select offer", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (i *Ingress) handleFlowGet(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "txn")

	txn, err := restateingress.Object[restate.Void, *Transaction](
		i.client, transactionService, txnID, "FindTransaction",
	).Request(r.Context(), restate.Void{})
	if err != nil {
		gatewayError(w, "get transaction", err)
		return
	}

	writeFlowTransaction(w, txn)
}

// writeFlowTransaction answers a flow poll. A session the orchestrator
// has never seen is a 404 for the caller, not a gateway failure.
func writeFlowTransaction(w http.ResponseWriter, txn *Transaction) {
	if txn == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Session not found"})
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

// ---------- Helpers ----------

// decodeValidated reads the body, checks it against the schema, and
// unmarshals into dst. Writes the client error itself and reports false
// when the request is rejected.
func decodeValidated(w http.ResponseWriter, r *http.Request, loader gojsonschema.JSONLoader, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return false
	}
	if err := validateJSONSchema(loader, body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// gatewayError reports a failed Restate call. Downstream unavailability
// is a recoverable server error for the caller; the transaction remains
// re-driveable from its last confirmed state.
func gatewayError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: restate call failed: %v", op, err)
	writeJSON(w, http.StatusBadGateway, map[string]string{
		"error": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
