// Package errors provides standardized error handling for the alert service.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeMissingPayload       ErrorCode = "MISSING_PAYLOAD"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"

	ErrCodeSettingsReadFailed  ErrorCode = "SETTINGS_READ_FAILED"
	ErrCodeSettingsWriteFailed ErrorCode = "SETTINGS_WRITE_FAILED"

	ErrCodeOrderFetchFailed ErrorCode = "ORDER_FETCH_FAILED"

	ErrCodeAlertDeliveryFailed ErrorCode = "ALERT_DELIVERY_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewAuthenticationFailedError creates a non-retryable webhook authentication error.
func NewAuthenticationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingPayloadError creates a non-retryable empty-body error.
func NewMissingPayloadError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingPayload,
		Message:   "Request body not found",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable payload validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSettingsReadFailedError creates a retryable settings read error.
func NewSettingsReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSettingsReadFailed,
		Message:   "Database error while reading shop settings",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSettingsWriteFailedError creates a retryable settings write error.
func NewSettingsWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSettingsWriteFailed,
		Message:   "Database error while writing shop settings",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderFetchFailedError creates a retryable Admin API error.
func NewOrderFetchFailedError(orderID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderFetchFailed,
		Message:   "Failed to fetch order details",
		Details:   fmt.Sprintf("orderId: %s, error: %s", orderID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAlertDeliveryFailedError creates a retryable delivery error.
func NewAlertDeliveryFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlertDeliveryFailed,
		Message:   "Alert delivery failed",
		Details:   fmt.Sprintf("provider: %s, error: %s", provider, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
