// Package config centralizes the demo's named defaults. The original
// deployment scattered these as inline literals across endpoints; every
// component reads them from here instead.
package config

import (
	"fmt"
	"os"
	"time"
)

// Credit scoring defaults.
const (
	// DefaultCreditScore is assumed for phones with no cached bureau score.
	DefaultCreditScore = 700

	// CreditScoreMin and CreditScoreMax bound freshly generated bureau
	// scores (inclusive).
	CreditScoreMin = 400
	CreditScoreMax = 750

	// MinEligibleScore is the cutoff below which no offers are returned.
	MinEligibleScore = 550

	// PrimeScore and above unlocks the prime offer set.
	PrimeScore = 750
)

// Loyalty and offer math.
const (
	// LoyaltyBonusThreshold is the points balance above which the bonus
	// offer is appended to personalized offers.
	LoyaltyBonusThreshold = 800

	// LoyaltyDiscountPerPoint is the rate discount earned per loyalty
	// point, in percentage points.
	LoyaltyDiscountPerPoint = 0.01

	// MaxLoyaltyDiscount caps the total rate discount, in percentage
	// points.
	MaxLoyaltyDiscount = 1.0

	// DefaultTenureMonths is the fixed amortization tenure.
	DefaultTenureMonths = 12

	// DefaultPrincipal is the demo principal used when a transaction
	// carries no amount.
	DefaultPrincipal = 12000
)

// Checkout context defaults, matching the demo storefront.
const (
	DefaultProductID = "PROD123"
	DefaultAmount    = 100000
)

// Notification token parameters. The symmetric key is shared between the
// bank and the merchant; this demo keeps the original's fixed-key trust
// model rather than hardening it.
const (
	TokenTTL          = time.Hour
	defaultTokenKey   = "merchant_secret_key"
	NotifyHTTPTimeout = 10 * time.Second
)

// TokenKey returns the shared HMAC signing key.
func TokenKey() []byte {
	return []byte(Getenv("CALLBACK_TOKEN_KEY", defaultTokenKey))
}

// DefaultCallbackURL is where the checkout page points the notification
// when the merchant does not override it.
func DefaultCallbackURL() string {
	return Getenv("MERCHANT_CALLBACK_URL", "http://localhost:8002/merchant/loan-callback")
}

// Getenv returns the environment value for key, or d when unset.
func Getenv(key, d string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return d
}

// GetenvInt returns the integer environment value for key, or d when
// unset or unparsable.
func GetenvInt(key string, d int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return d
}
