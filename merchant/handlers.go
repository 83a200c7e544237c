package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/o001705/EF/token"
)

// StatusPending is returned for transactions with no recorded
// notification yet. Polling is the caller's responsibility; the endpoint
// never blocks waiting for one.
const StatusPending = "PENDING"

// CallbackPayload is the notification body sent by the bank. The signed
// token in the Authorization header is the trusted copy of these fields;
// the body is convenience.
type CallbackPayload struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	CallbackURL   string `json:"callback_url,omitempty"`
}

// StatusRequest is the merchant's polling request.
type StatusRequest struct {
	TxnID string `json:"txn_id"`
}

type ctxKey string

const claimsKey ctxKey = "notification_claims"

// Server holds the callback receiver's dependencies.
type Server struct {
	store StatusStore
	key   []byte
}

// NewServer builds the receiver around a status store and the shared
// signing key.
func NewServer(store StatusStore, key []byte) *Server {
	return &Server{store: store, key: key}
}

// Routes assembles the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				req.Body = http.MaxBytesReader(w, req.Body, 1<<20)
				next.ServeHTTP(w, req)
			})
		})
		r.Use(s.authMiddleware)
		r.Post("/merchant/loan-callback", s.handleLoanCallback)
	})

	r.Post("/merchant/status", s.handleStatus)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

// authMiddleware verifies the bearer token before any status is
// recorded. Missing, malformed, tampered, or expired tokens are all
// rejected with 401 and leave the store untouched.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := token.FromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := token.Verify(s.key, raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleLoanCallback(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(claimsKey).(*token.NotificationClaims)
	if !ok {
		http.Error(w, "missing token claims", http.StatusUnauthorized)
		return
	}

	var payload CallbackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// The signed claims are the source of truth; a body that disagrees
	// with them is a forgery attempt.
	if payload.TransactionID != "" && payload.TransactionID != claims.TransactionID {
		http.Error(w, "payload does not match token claims", http.StatusUnauthorized)
		return
	}

	log.Printf("[CALLBACK RECEIVED] transaction=%s status=%s", claims.TransactionID, claims.Status)
	s.store.Put(claims.TransactionID, claims.Status)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Callback received and status updated",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TxnID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid request format",
		})
		return
	}

	status, ok := s.store.Get(req.TxnID)
	if !ok {
		status = StatusPending
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"transaction_id": req.TxnID,
		"status":         status,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
