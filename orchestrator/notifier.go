package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	restate "github.com/restatedev/sdk-go"

	"github.com/o001705/EF/config"
	"github.com/o001705/EF/token"
)

// Notifier delivers the terminal status notification to the merchant's
// callback URL. Keyed by transaction id: duplicate sends for the same
// transaction are serialized, and the last delivery is recorded in state.
//
// Delivery is at-least-once: transport failures are retryable errors and
// the runtime redelivers. A 4xx from the receiver is terminal, since a
// rejected token will not become valid by retrying.
type Notifier struct{}

const stateKeyDelivery = "delivery"

// Deliver signs the {transaction_id, status} assertion and posts it to
// the callback URL with the token in the Authorization header.
func (Notifier) Deliver(
	ctx restate.ObjectContext,
	req NotificationRequest,
) error {
	txnID := restate.Key(ctx)

	if req.CallbackURL == "" {
		return restate.TerminalError(
			fmt.Errorf("no callback url for transaction %s", txnID), 400)
	}

	ctx.Log().Info("Delivering merchant notification",
		"transactionId", txnID,
		"status", req.Status,
		"callbackUrl", req.CallbackURL)

	// Classification happens inside Run so a transport failure or 5xx is
	// a retryable Run error and the POST is actually re-attempted; a
	// journaled success would otherwise replay on retry.
	_, err := restate.Run(ctx, func(rc restate.RunContext) (restate.Void, error) {
		signed, err := token.Sign(config.TokenKey(), req.TransactionID, req.Status, config.TokenTTL)
		if err != nil {
			return restate.Void{}, restate.TerminalError(fmt.Errorf("signing failed: %w", err), 500)
		}

		statusCode, err := postNotification(req, signed)
		if err != nil {
			return restate.Void{}, fmt.Errorf("merchant unreachable: %w", err)
		}
		if statusCode >= 400 && statusCode < 500 {
			return restate.Void{}, restate.TerminalError(
				fmt.Errorf("merchant rejected notification: HTTP %d", statusCode), restate.Code(statusCode))
		}
		if statusCode >= 500 {
			return restate.Void{}, fmt.Errorf("merchant unavailable: HTTP %d", statusCode)
		}
		return restate.Void{}, nil
	})
	if err != nil {
		ctx.Log().Error("Notification delivery failed",
			"transactionId", txnID,
			"error", err)
		return err
	}

	restate.Set(ctx, stateKeyDelivery, NotificationRecord{
		Status:      req.Status,
		CallbackURL: req.CallbackURL,
		Delivered:   true,
	})

	ctx.Log().Info("Merchant notified", "transactionId", txnID, "status", req.Status)
	return nil
}

// GetDelivery exposes the delivery record for inspection.
func (Notifier) GetDelivery(
	ctx restate.ObjectSharedContext,
	_ restate.Void,
) (NotificationRecord, error) {
	return restate.Get[NotificationRecord](ctx, stateKeyDelivery)
}

func postNotification(req NotificationRequest, signed string) (int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, req.CallbackURL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+signed)

	client := &http.Client{Timeout: config.NotifyHTTPTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
