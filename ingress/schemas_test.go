package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xeipuuv/gojsonschema"
)

func TestValidateJSONSchema(t *testing.T) {
	tests := []struct {
		name   string
		loader gojsonschema.JSONLoader
		body   string
		valid  bool
	}{
		{"kyc ok", kycLoader, `{"phone_number":"555","govt_id":"ID1","name":"John Doe","address":"42 Main St"}`, true},
		{"kyc missing govt_id", kycLoader, `{"phone_number":"555","name":"John Doe"}`, false},
		{"kyc unknown field", kycLoader, `{"phone_number":"555","govt_id":"ID1","name":"J","extra":1}`, false},
		{"credit ok", creditCheckLoader, `{"phone_number":"555"}`, true},
		{"credit empty phone", creditCheckLoader, `{"phone_number":""}`, false},
		{"onboard ok", onboardLoader, `{"phone_number":"555","name":"J","credit_score":700,"kyc_verified":true}`, true},
		{"onboard score as string", onboardLoader, `{"phone_number":"555","name":"J","credit_score":"700","kyc_verified":true}`, false},
		{"originate ok", originateLoader, `{"phone_number":"555","offer_id":2,"amount":10000}`, true},
		{"originate negative amount", originateLoader, `{"phone_number":"555","offer_id":2,"amount":-1}`, false},
		{"score ok", scoreLoader, `{"phone_number":"555","credit_score":720}`, true},
		{"score negative", scoreLoader, `{"phone_number":"555","credit_score":-1}`, false},
		{"loyalty ok", loyaltyLoader, `{"phone_number":"555","points":800}`, true},
		{"loyalty missing points", loyaltyLoader, `{"phone_number":"555"}`, false},
		{"flow start ok", flowStartLoader, `{"product_id":"PROD123","amount":100000,"callback_url":"http://m/cb"}`, true},
		{"flow start missing callback", flowStartLoader, `{"product_id":"PROD123"}`, false},
		{"flow offer ok", flowOfferLoader, `{"offer_id":3}`, true},
		{"flow offer non-integer", flowOfferLoader, `{"offer_id":"3"}`, false},
		{"flow phone ok", flowPhoneLoader, `{"phone_number":"555","amount":5000}`, true},
		{"flow kyc ok", flowKYCLoader, `{"govt_id":"ID1","name":"John Doe"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateJSONSchema(tt.loader, []byte(tt.body))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
