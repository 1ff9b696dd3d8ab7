package dto

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/iho/fundledger/internal/domain"
)

// Request body schemas. They check shape and JSON types only; required fields
// and business rules are enforced by the use cases so that every field error
// is reported the same way.
const (
	entrySchema = `{
		"type": "object",
		"properties": {
			"account_id": {"type": "string"},
			"amount": {"type": ["number", "string"]},
			"entry_type": {"type": "string"},
			"related_entity_type": {"type": "string"},
			"related_entity_id": {"type": "string"},
			"notes": {"type": "string"}
		}
	}`

	transactionSchema = `{
		"type": "object",
		"properties": {
			"transaction_date": {"type": ["string", "null"]},
			"transaction_type": {"type": "string"},
			"description": {"type": "string"},
			"notes": {"type": "string"},
			"created_by": {"type": "string"},
			"related_po_id": {"type": "string"},
			"reference_number": {"type": "string"},
			"entries": {"type": "array", "items": ` + entrySchema + `}
		}
	}`

	transferSchema = `{
		"type": "object",
		"properties": {
			"source_account_id": {"type": "string"},
			"destination_account_id": {"type": "string"},
			"amount": {"type": ["number", "string"]},
			"description": {"type": "string"},
			"transaction_date": {"type": ["string", "null"]},
			"created_by": {"type": "string"},
			"apply_interest": {"type": "boolean"},
			"interest_config_id": {"type": ["string", "null"]},
			"interest_start_date": {"type": ["string", "null"]},
			"interest_end_date": {"type": ["string", "null"]}
		}
	}`

	interestConfigSchema = `{
		"type": "object",
		"properties": {
			"config_name": {"type": "string"},
			"rate_percentage": {"type": ["number", "string"]},
			"calculation_type": {"type": "string"},
			"description": {"type": "string"},
			"is_active": {"type": "boolean"}
		}
	}`
)

// Compiled request schemas.
var (
	TransactionSchema    = mustSchema(transactionSchema)
	TransferSchema       = mustSchema(transferSchema)
	InterestConfigSchema = mustSchema(interestConfigSchema)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile request schema: %v", err))
	}
	return schema
}

// ValidateBody checks body against schema. Violations are returned as a
// *domain.ValidationError naming the offending fields.
func ValidateBody(schema *gojsonschema.Schema, body []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return domain.NewValidationError("request body is not valid JSON")
	}
	if res.Valid() {
		return nil
	}

	seen := make(map[string]struct{})
	fields := make([]string, 0, len(res.Errors()))
	messages := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		field := schemaErrorField(e)
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		fields = append(fields, field)
		messages = append(messages, e.Description())
	}
	sort.Strings(fields)

	return domain.NewValidationError("invalid request body: "+strings.Join(messages, "; "), fields...)
}

func schemaErrorField(e gojsonschema.ResultError) string {
	field := e.Field()
	if field == "(root)" {
		if p, ok := e.Details()["property"].(string); ok && p != "" {
			return p
		}
		return "body"
	}
	return field
}
