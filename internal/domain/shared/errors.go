package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

// Error codes for business-rule violations raised by the settlement core.
// Handlers map these to HTTP statuses; CONCURRENCY_CONFLICT is the only
// retryable code (caller re-reads and retries).
const (
	CodeInvalidCommissionConfig = "INVALID_COMMISSION_CONFIG"
	CodeSaleNotClosable         = "SALE_NOT_CLOSABLE"
	CodeOverpayment             = "OVERPAYMENT"
	CodeAlreadySettled          = "ALREADY_SETTLED"
	CodeInsufficientBalance     = "INSUFFICIENT_BALANCE"
	CodeConcurrencyConflict     = "CONCURRENCY_CONFLICT"
)

// IsRetryable reports whether the error is a transient conflict the caller
// may retry after re-reading the aggregate.
func IsRetryable(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == CodeConcurrencyConflict
	}
	return false
}
