package dto

import "net/http"

// Error codes raised by the HTTP layer itself. Domain errors carry their own
// codes (see internal/domain/shared).
const (
	// ErrCodeBadRequest is used for malformed requests and binding failures
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Business rule
// violations map to 422 so clients can tell a rejected operation apart from a
// malformed request; CONCURRENCY_CONFLICT maps to 409 and is retryable.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Resource errors
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Input errors
	"INVALID_INPUT": http.StatusBadRequest,

	// Business rule errors
	"INVALID_STATE":             http.StatusUnprocessableEntity,
	"SALE_NOT_CLOSABLE":         http.StatusUnprocessableEntity,
	"OVERPAYMENT":               http.StatusUnprocessableEntity,
	"ALREADY_SETTLED":           http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE":      http.StatusUnprocessableEntity,
	"INVALID_COMMISSION_CONFIG": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
