package errors

var (
	ErrWalletNotFound = &DomainError{
		Code:    CodeWalletNotFound,
		Message: "wallet not found",
	}
	ErrInvalidArgument = &DomainError{
		Code:    CodeInvalidArgument,
		Message: "invalid argument",
	}
	ErrStoreUnavailable = &DomainError{
		Code:    CodeStoreUnavailable,
		Message: "wallet store unavailable",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    CodeInsufficientBalance,
		Message: "insufficient wallet balance",
	}
	ErrDuplicateReference = &DomainError{
		Code:    CodeDuplicateReference,
		Message: "transaction reference already used",
	}
)
