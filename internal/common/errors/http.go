// internal/common/errors/http.go
package errors

import "net/http"

// HTTPStatus maps an error code to the HTTP status the API responds with.
// Settings persistence failures on the webhook path are handled by the caller
// and never reach this mapping.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeAuthenticationFailed:
		return http.StatusUnauthorized
	case ErrCodeMissingPayload, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeSettingsReadFailed, ErrCodeSettingsWriteFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
