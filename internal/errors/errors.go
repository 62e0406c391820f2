// Package errors defines the domain error type shared by services and
// handlers. Errors carry a stable code that the HTTP layer maps to a status.
package errors

import "fmt"

// Error codes.
const (
	CodeWalletNotFound        = "WALLET_NOT_FOUND"
	CodeInvalidArgument       = "INVALID_ARGUMENT"
	CodeStoreUnavailable      = "STORE_UNAVAILABLE"
	CodeInsufficientBalance   = "INSUFFICIENT_BALANCE"
	CodeDuplicateReference    = "DUPLICATE_REFERENCE"
	CodePaymentNotCompleted   = "PAYMENT_NOT_COMPLETED"
	CodePaymentProviderFailed = "PAYMENT_PROVIDER_FAILED"
	CodeInvalidSignature      = "INVALID_SIGNATURE"
)

// DomainError is an error with a stable code. Two DomainErrors match under
// errors.Is when their codes are equal, so wrapped or re-messaged copies
// still compare equal to the sentinels below.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Err: cause}
}

// WithMessage returns a copy of e with a more specific message.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: e.Code, Message: fmt.Sprintf(format, args...), Err: e.Err}
}
