// Package validation validates API payloads against JSON schemas.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// settingsSchema guards the settings update payload. Replace semantics: all
// three configurable fields are required on every write.
const settingsSchema = `{
	"type": "object",
	"properties": {
		"shop": {"type": "string", "minLength": 1},
		"orderThreshold": {"type": "number", "minimum": 0},
		"emailRecipient": {"type": "string"},
		"isEnabled": {"type": "boolean"}
	},
	"required": ["shop", "orderThreshold", "emailRecipient", "isEnabled"],
	"additionalProperties": false
}`

// ValidateSettings checks a raw settings update payload against the schema.
func ValidateSettings(raw []byte) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(settingsSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out, nil
}
