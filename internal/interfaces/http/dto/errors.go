package dto

import "net/http"

// Error codes returned in the error envelope
const (
	ErrCodeInternal       = "ERR_INTERNAL"
	ErrCodeValidation     = "ERR_VALIDATION"
	ErrCodeBadRequest     = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput   = "ERR_INVALID_INPUT"
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists  = "ERR_ALREADY_EXISTS"
	ErrCodeInvalidState   = "ERR_INVALID_STATE"
	ErrCodeNotEnoughStock = "ERR_NOT_ENOUGH_STOCK"
	ErrCodeConflict       = "ERR_CONCURRENT_MODIFICATION"
	ErrCodeTooLarge       = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited    = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:       http.StatusInternalServerError,
	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeInvalidInput:   http.StatusBadRequest,
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeAlreadyExists:  http.StatusConflict,
	ErrCodeInvalidState:   http.StatusUnprocessableEntity,
	ErrCodeNotEnoughStock: http.StatusUnprocessableEntity,
	ErrCodeConflict:       http.StatusConflict,
	ErrCodeTooLarge:       http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:    http.StatusTooManyRequests,
}

// GetHTTPStatus returns the status for a code, 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodes maps the codes of shared.DomainError to envelope codes
var domainCodes = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"NOT_ENOUGH_STOCK":      ErrCodeNotEnoughStock,
	"OPTIMISTIC_LOCK_ERROR": ErrCodeConflict,
}

// NormalizeErrorCode converts a domain error code to its envelope code.
// Unknown codes become ERR_INTERNAL.
func NormalizeErrorCode(code string) string {
	if normalized, ok := domainCodes[code]; ok {
		return normalized
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
