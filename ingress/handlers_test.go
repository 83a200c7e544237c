package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFlowTransaction_UnknownSessionIs404(t *testing.T) {
	rec := httptest.NewRecorder()
	writeFlowTransaction(rec, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Session not found", resp["detail"])
}

func TestWriteFlowTransaction_KnownSession(t *testing.T) {
	rec := httptest.NewRecorder()
	writeFlowTransaction(rec, &Transaction{
		TransactionID: "txn-1",
		ProductID:     "PROD123",
		Status:        "OFFERS_PRESENTED",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "txn-1", resp.TransactionID)
	assert.Equal(t, "OFFERS_PRESENTED", resp.Status)
}
