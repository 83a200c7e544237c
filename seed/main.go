// The seed tool loads the demo fixtures the bank ships with: four
// verified customers with bureau scores and loyalty balances, plus a
// spread of standalone scores so common test phone numbers get a stable
// credit profile out of the box. It drives the regular ingress
// endpoints, so running it twice is a harmless overwrite.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/o001705/EF/config"
)

type customerFixture struct {
	PhoneNumber   string
	Name          string
	GovtID        string
	CreditScore   int
	LoyaltyPoints int
}

var customerFixtures = []customerFixture{
	{"1234567890", "John Doe", "ID123456789", 700, 1000},
	{"9876543210", "Jane Smith", "ID9876543210", 650, 500},
	{"1122334455", "Alice Johnson", "ID1122334455", 720, 800},
	{"5566778899", "Bob Brown", "ID566778899", 680, 300},
}

// Standalone bureau scores for phones without a customer record; these
// shoppers hit the known-score path but still need KYC.
var scoreFixtures = map[string]int{
	"9999999999": 800,
	"8888888888": 600,
	"7777777777": 750,
	"6666666666": 620,
	"5555555555": 690,
	"4444444444": 710,
	"3333333333": 730,
	"2222222222": 740,
	"1111111111": 760,
	"0000000000": 500,
}

func main() {
	base := config.Getenv("INGRESS_URL", "http://localhost:8001")

	if err := seed(base, http.DefaultClient); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("seeded %d customers and %d standalone scores via %s",
		len(customerFixtures), len(scoreFixtures), base)
}

func seed(base string, client *http.Client) error {
	for _, c := range customerFixtures {
		if err := post(client, base+"/ledger/onboard", map[string]any{
			"phone_number": c.PhoneNumber,
			"name":         c.Name,
			"govt_id":      c.GovtID,
			"credit_score": c.CreditScore,
			"kyc_verified": true,
		}); err != nil {
			return fmt.Errorf("onboard %s: %w", c.PhoneNumber, err)
		}

		if err := post(client, base+"/ledger/loyalty", map[string]any{
			"phone_number": c.PhoneNumber,
			"points":       c.LoyaltyPoints,
		}); err != nil {
			return fmt.Errorf("loyalty %s: %w", c.PhoneNumber, err)
		}
	}

	for phone, score := range scoreFixtures {
		if err := post(client, base+"/ledger/score", map[string]any{
			"phone_number": phone,
			"credit_score": score,
		}); err != nil {
			return fmt.Errorf("score %s: %w", phone, err)
		}
	}

	return nil
}

func post(client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return nil
}
