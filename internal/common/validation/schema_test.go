package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{
			name:    "valid",
			payload: `{"shop": "demo.myshopify.com", "orderThreshold": 100, "emailRecipient": "ops@shop.com", "isEnabled": true}`,
			valid:   true,
		},
		{
			name:    "zero threshold allowed",
			payload: `{"shop": "demo.myshopify.com", "orderThreshold": 0, "emailRecipient": "", "isEnabled": false}`,
			valid:   true,
		},
		{
			name:    "threshold as string",
			payload: `{"shop": "demo.myshopify.com", "orderThreshold": "100", "emailRecipient": "ops@shop.com", "isEnabled": true}`,
			valid:   false,
		},
		{
			name:    "negative threshold",
			payload: `{"shop": "demo.myshopify.com", "orderThreshold": -1, "emailRecipient": "ops@shop.com", "isEnabled": true}`,
			valid:   false,
		},
		{
			name:    "missing isEnabled",
			payload: `{"shop": "demo.myshopify.com", "orderThreshold": 100, "emailRecipient": "ops@shop.com"}`,
			valid:   false,
		},
		{
			name:    "empty shop",
			payload: `{"shop": "", "orderThreshold": 100, "emailRecipient": "ops@shop.com", "isEnabled": true}`,
			valid:   false,
		},
		{
			name:    "extra field",
			payload: `{"shop": "demo.myshopify.com", "orderThreshold": 100, "emailRecipient": "ops@shop.com", "isEnabled": true, "other": 1}`,
			valid:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateSettings([]byte(tt.payload))
			assert.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.NotEmpty(t, result.Errors)
			}
		})
	}
}

func TestValidateSettings_InvalidJSON(t *testing.T) {
	_, err := ValidateSettings([]byte(`{not json`))
	assert.Error(t, err)
}
