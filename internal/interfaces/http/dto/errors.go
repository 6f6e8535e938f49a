package dto

import (
	"net/http"

	"github.com/bizledger/backend/internal/domain/shared"
)

// Error codes produced by the HTTP layer itself. Domain codes
// (shared.Code*) pass through unchanged.
const (
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid     = "INVALID_TOKEN"
	ErrCodeTokenRevoked     = "TOKEN_REVOKED"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Domain errors
	shared.CodeNotFound:         http.StatusNotFound,
	shared.CodeDuplicateKey:     http.StatusConflict,
	shared.CodeInvalidReference: http.StatusUnprocessableEntity,
	shared.CodeValidationFailed: http.StatusBadRequest,
	shared.CodeUnauthorized:     http.StatusUnauthorized,
	shared.CodeForbidden:        http.StatusForbidden,

	// Transport errors
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodeDuplicateRequest: http.StatusConflict,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeTokenExpired:     http.StatusUnauthorized,
	ErrCodeTokenInvalid:     http.StatusUnauthorized,
	ErrCodeTokenRevoked:     http.StatusUnauthorized,
	ErrCodeRateLimited:      http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
