package errors

var (
	ErrPaymentNotCompleted = &DomainError{
		Code:    CodePaymentNotCompleted,
		Message: "payment has not completed",
	}
	ErrPaymentProviderFailed = &DomainError{
		Code:    CodePaymentProviderFailed,
		Message: "payment provider request failed",
	}
	ErrInvalidSignature = &DomainError{
		Code:    CodeInvalidSignature,
		Message: "invalid webhook signature",
	}
)
