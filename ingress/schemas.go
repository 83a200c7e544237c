package main

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Request schemas for the POST bodies the ingress accepts. Validation
// failures are rejected before anything reaches the bank services.

const schemaKYC = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["phone_number", "govt_id", "name"],
  "properties": {
    "phone_number": { "type": "string", "minLength": 1 },
    "govt_id": { "type": "string", "minLength": 1 },
    "name": { "type": "string", "minLength": 1 },
    "address": { "type": "string" }
  },
  "additionalProperties": false
}`

const schemaCreditCheck = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["phone_number"],
  "properties": {
    "phone_number": { "type": "string", "minLength": 1 }
  },
  "additionalProperties": false
}`

const schemaOnboard = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["phone_number", "name", "credit_score", "kyc_verified"],
  "properties": {
    "phone_number": { "type": "string", "minLength": 1 },
    "name": { "type": "string", "minLength": 1 },
    "govt_id": { "type": "string" },
    "address": { "type": "string" },
    "credit_score": { "type": "integer", "minimum": 0 },
    "kyc_verified": { "type": "boolean" }
  },
  "additionalProperties": false
}`

const schemaOriginate = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["phone_number", "offer_id", "amount"],
  "properties": {
    "phone_number": { "type": "string", "minLength": 1 },
    "offer_id": { "type": "integer" },
    "amount": { "type": "number", "minimum": 0 }
  },
  "additionalProperties": false
}`

const schemaScore = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["phone_number", "credit_score"],
  "properties": {
    "phone_number": { "type": "string", "minLength": 1 },
    "credit_score": { "type": "integer", "minimum": 0 }
  },
  "additionalProperties": false
}`

const schemaLoyalty = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["phone_number", "points"],
  "properties": {
    "phone_number": { "type": "string", "minLength": 1 },
    "points": { "type": "integer", "minimum": 0 }
  },
  "additionalProperties": false
}`

const schemaFlowStart = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["callback_url"],
  "properties": {
    "product_id": { "type": "string" },
    "amount": { "type": "number", "minimum": 0 },
    "callback_url": { "type": "string", "minLength": 1 }
  },
  "additionalProperties": false
}`

const schemaFlowPhone = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["phone_number"],
  "properties": {
    "phone_number": { "type": "string", "minLength": 1 },
    "amount": { "type": "number", "minimum": 0 }
  },
  "additionalProperties": false
}`

const schemaFlowKYC = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["govt_id", "name"],
  "properties": {
    "govt_id": { "type": "string", "minLength": 1 },
    "name": { "type": "string", "minLength": 1 },
    "address": { "type": "string" }
  },
  "additionalProperties": false
}`

const schemaFlowOffer = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["offer_id"],
  "properties": {
    "offer_id": { "type": "integer" }
  },
  "additionalProperties": false
}`

var (
	kycLoader         = gojsonschema.NewStringLoader(schemaKYC)
	creditCheckLoader = gojsonschema.NewStringLoader(schemaCreditCheck)
	onboardLoader     = gojsonschema.NewStringLoader(schemaOnboard)
	originateLoader   = gojsonschema.NewStringLoader(schemaOriginate)
	scoreLoader       = gojsonschema.NewStringLoader(schemaScore)
	loyaltyLoader     = gojsonschema.NewStringLoader(schemaLoyalty)
	flowStartLoader   = gojsonschema.NewStringLoader(schemaFlowStart)
	flowPhoneLoader   = gojsonschema.NewStringLoader(schemaFlowPhone)
	flowKYCLoader     = gojsonschema.NewStringLoader(schemaFlowKYC)
	flowOfferLoader   = gojsonschema.NewStringLoader(schemaFlowOffer)
)

func validateJSONSchema(schemaLoader gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		for _, e := range result.Errors() {
			sb.WriteString(e.String())
			sb.WriteString("; ")
		}
		return fmt.Errorf("request does not conform to schema: %s", sb.String())
	}
	return nil
}
