package dto

import "net/http"

// Error code constants. Domain error codes from shared.DomainError map
// onto these before the HTTP status is derived.
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	ErrCodeValidation = "ERR_VALIDATION"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code, falling
// back to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"INVOICE_NOT_FOUND":    ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeBadRequest,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"INVALID_STATE":        ErrCodeInvalidState,
	"INVALID_PERIOD":       ErrCodeBadRequest,
	"INVALID_DATE_RANGE":   ErrCodeBadRequest,
	"INVALID_AMOUNT":       ErrCodeValidation,
	"INVALID_CURRENCY":     ErrCodeValidation,
	"INVALID_NUMBER":       ErrCodeValidation,
	"INVALID_NAME":         ErrCodeValidation,
	"INVALID_EMAIL":        ErrCodeValidation,
	"INVALID_CLIENT":       ErrCodeValidation,
	"INVALID_SUPPLIER":     ErrCodeValidation,
	"INVALID_PARTY":        ErrCodeValidation,
	"INVALID_PARTY_TYPE":   ErrCodeValidation,
	"INVALID_TYPE":         ErrCodeValidation,
	"INVALID_TARGET":       ErrCodeValidation,
	"INVALID_INVOICE":      ErrCodeValidation,
	"INVALID_POLICY":       ErrCodeValidation,
	"INVALID_PRODUCT":      ErrCodeValidation,
	"INVALID_PRICE":        ErrCodeValidation,
	"INVALID_QUANTITY":     ErrCodeValidation,
	"INVALID_EXCHANGE":     ErrCodeValidation,
	"INVALID_RETURN":       ErrCodeValidation,
	"WEAK_PASSWORD":        ErrCodeValidation,
	"ALLOCATION_OVERFLOW":  ErrCodeBusinessRule,
	"INSUFFICIENT_STOCK":   ErrCodeBusinessRule,
}

// NormalizeErrorCode maps a domain error code to an API error code
func NormalizeErrorCode(domainCode string) string {
	if code, ok := DomainErrorCodeMapping[domainCode]; ok {
		return code
	}
	return ErrCodeUnknown
}
