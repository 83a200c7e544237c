package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o001705/EF/token"
)

var testKey = []byte("merchant_secret_key")

func newTestServer() *Server {
	return NewServer(NewStatusStore(), testKey)
}

func postCallback(t *testing.T, s *Server, authHeader string, payload CallbackPayload) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/merchant/loan-callback", bytes.NewReader(body))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func pollStatus(t *testing.T, s *Server, txnID string) (int, map[string]string) {
	t.Helper()

	body, err := json.Marshal(StatusRequest{TxnID: txnID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/merchant/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestLoanCallback_ValidToken(t *testing.T) {
	s := newTestServer()

	signed, err := token.Sign(testKey, "txn-1", "success", time.Hour)
	require.NoError(t, err)

	rec := postCallback(t, s, "Bearer "+signed, CallbackPayload{
		TransactionID: "txn-1",
		Status:        "success",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	code, resp := pollStatus(t, s, "txn-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "txn-1", resp["transaction_id"])
}

func TestLoanCallback_MissingToken(t *testing.T) {
	s := newTestServer()

	rec := postCallback(t, s, "", CallbackPayload{
		TransactionID: "txn-2",
		Status:        "success",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Nothing recorded: the transaction still polls as PENDING.
	code, resp := pollStatus(t, s, "txn-2")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusPending, resp["status"])
}

func TestLoanCallback_TamperedToken(t *testing.T) {
	s := newTestServer()

	signed, err := token.Sign([]byte("attacker-key"), "txn-3", "success", time.Hour)
	require.NoError(t, err)

	rec := postCallback(t, s, "Bearer "+signed, CallbackPayload{
		TransactionID: "txn-3",
		Status:        "success",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	_, resp := pollStatus(t, s, "txn-3")
	assert.Equal(t, StatusPending, resp["status"])
}

func TestLoanCallback_BodyDisagreesWithClaims(t *testing.T) {
	s := newTestServer()

	signed, err := token.Sign(testKey, "txn-4", "failure", time.Hour)
	require.NoError(t, err)

	rec := postCallback(t, s, "Bearer "+signed, CallbackPayload{
		TransactionID: "txn-other",
		Status:        "success",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	_, resp := pollStatus(t, s, "txn-4")
	assert.Equal(t, StatusPending, resp["status"])
}

func TestLoanCallback_DuplicateDelivery_LastWriteWins(t *testing.T) {
	s := newTestServer()

	first, err := token.Sign(testKey, "txn-5", "failure", time.Hour)
	require.NoError(t, err)
	second, err := token.Sign(testKey, "txn-5", "success", time.Hour)
	require.NoError(t, err)

	rec := postCallback(t, s, "Bearer "+first, CallbackPayload{TransactionID: "txn-5", Status: "failure"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postCallback(t, s, "Bearer "+second, CallbackPayload{TransactionID: "txn-5", Status: "success"})
	require.Equal(t, http.StatusOK, rec.Code)

	_, resp := pollStatus(t, s, "txn-5")
	assert.Equal(t, "success", resp["status"])
}

func TestStatus_UnknownTransaction(t *testing.T) {
	s := newTestServer()

	code, resp := pollStatus(t, s, "never-seen")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusPending, resp["status"])
}

func TestStatus_InvalidBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/merchant/status", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
