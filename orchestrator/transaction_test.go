package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	txn, err := newTransaction("txn-100", StartRequest{
		ProductID:   "PROD123",
		Amount:      100000,
		CallbackURL: "http://localhost:8002/merchant/loan-callback",
	})
	require.NoError(t, err)

	assert.Equal(t, "txn-100", txn.TransactionID)
	assert.Equal(t, StatusCreated, txn.Status)
	assert.Equal(t, 100000.0, txn.Amount)
}

func TestNewTransaction_RequiresCallbackURL(t *testing.T) {
	_, err := newTransaction("txn-102", StartRequest{ProductID: "PROD123"})
	require.Error(t, err)
}

func TestTransition_ForwardOnly(t *testing.T) {
	// Moving backwards is refused.
	require.Error(t, transition(StatusOffersPresented, StatusPhoneCaptured))

	// Forward is fine, including skipping KYC for known customers.
	require.NoError(t, transition(StatusCreated, StatusPhoneCaptured))
	require.NoError(t, transition(StatusPhoneCaptured, StatusKYCDone))
	require.NoError(t, transition(StatusOffersPresented, StatusOriginating))
	require.NoError(t, transition(StatusOriginating, StatusSuccess))
}

func TestTransition_FailureShortCircuits(t *testing.T) {
	for _, cur := range []string{
		StatusCreated,
		StatusPhoneCaptured,
		StatusKYCPending,
		StatusKYCDone,
		StatusOffersPresented,
		StatusOriginating,
	} {
		assert.NoError(t, transition(cur, StatusFailure), "from %s", cur)
	}
}

func TestTransition_TerminalStatesFrozen(t *testing.T) {
	require.Error(t, transition(StatusSuccess, StatusFailure))
	require.Error(t, transition(StatusFailure, StatusSuccess))
	require.Error(t, transition(StatusFailure, StatusFailure))
}

func TestCheckSelectable_UnknownSessionIsClientError(t *testing.T) {
	// A missing session is a fatal client error, not an origination
	// decline: the caller must be able to tell the two apart.
	err := checkSelectable(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestCheckSelectable_RequiresPresentedOffers(t *testing.T) {
	// Origination from a pre-offer state would skip KYC_DONE and
	// OFFERS_PRESENTED entirely; every intermediate status must stay
	// externally observable.
	for _, cur := range []string{
		StatusCreated,
		StatusPhoneCaptured,
		StatusKYCPending,
		StatusKYCDone,
		StatusOriginating,
	} {
		err := checkSelectable(&Transaction{
			TransactionID: "txn-107",
			PhoneNumber:   "5550000000",
			Status:        cur,
		})
		require.Error(t, err, "from %s", cur)
		assert.Contains(t, err.Error(), "no offers presented", "from %s", cur)
	}
}

func TestCheckSelectable_TerminalReEntryForbidden(t *testing.T) {
	err := checkSelectable(&Transaction{
		TransactionID: "txn-103",
		PhoneNumber:   "5550000000",
		Status:        StatusSuccess,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already finalized")
}

func TestCheckSelectable_ReadyTransaction(t *testing.T) {
	require.NoError(t, checkSelectable(&Transaction{
		TransactionID: "txn-104",
		PhoneNumber:   "5550000000",
		CallbackURL:   "http://merchant/cb",
		Status:        StatusOffersPresented,
	}))
}
