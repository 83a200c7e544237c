// Package token signs and verifies the merchant callback notification.
// The notification is a tamper-evident assertion of {transaction_id,
// status} carried as an HS256 JWT in the Authorization header, so the
// receiver can trust the payload independent of transport.
package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NotificationClaims is the claim set asserted by the bank.
type NotificationClaims struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	jwt.RegisteredClaims
}

// Sign produces a bearer token asserting the terminal status of a
// transaction, valid for ttl.
func Sign(key []byte, transactionID, status string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := NotificationClaims{
		TransactionID: transactionID,
		Status:        status,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// Verify parses and validates a bearer token. Only HMAC signatures are
// accepted; anything else is rejected before the signature is checked.
func Verify(key []byte, tokenStr string) (*NotificationClaims, error) {
	claims := &NotificationClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// FromAuthHeader extracts the bearer token from an Authorization header
// value. Returns an error for a missing or malformed header.
func FromAuthHeader(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("missing authorization")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", fmt.Errorf("invalid authorization header")
	}
	return parts[1], nil
}
