// The checkout service is the merchant's storefront boundary: each call
// issues a fresh transaction id and the static checkout context the bank
// flow will carry. It has no downstream dependencies and no side effects.
package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/o001705/EF/config"
)

// SessionRequest lets the merchant override the demo defaults. A
// caller-supplied transaction id is honored; otherwise one is generated.
type SessionRequest struct {
	TransactionID string  `json:"transaction_id,omitempty"`
	ProductID     string  `json:"product_id,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	CallbackURL   string  `json:"callback_url,omitempty"`
}

// SessionContext is the rendered checkout context handed to the shopper.
type SessionContext struct {
	TransactionID string  `json:"transaction_id"`
	ProductID     string  `json:"product_id"`
	Amount        float64 `json:"amount"`
	CallbackURL   string  `json:"callback_url"`
}

func handleSessionStart(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	session := SessionContext{
		TransactionID: req.TransactionID,
		ProductID:     req.ProductID,
		Amount:        req.Amount,
		CallbackURL:   req.CallbackURL,
	}
	if session.TransactionID == "" {
		// UUIDv4: collision-free across concurrent sessions.
		session.TransactionID = uuid.NewString()
	}
	if session.ProductID == "" {
		session.ProductID = config.DefaultProductID
	}
	if session.Amount <= 0 {
		session.Amount = config.DefaultAmount
	}
	if session.CallbackURL == "" {
		session.CallbackURL = config.DefaultCallbackURL()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(session); err != nil {
		log.Printf("write response: %v", err)
	}
}

func main() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/session/start", handleSessionStart)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := config.Getenv("CHECKOUT_ADDR", ":8000")
	log.Printf("Starting merchant checkout service on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("listen failed: %v", err)
	}
}
