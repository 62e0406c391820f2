package wallet

import apperrors "daswos/internal/errors"

// Service errors
var (
	ErrWalletNotFound      = apperrors.ErrWalletNotFound
	ErrInvalidArgument     = apperrors.ErrInvalidArgument
	ErrStoreUnavailable    = apperrors.ErrStoreUnavailable
	ErrInsufficientBalance = apperrors.ErrInsufficientBalance
	ErrDuplicateReference  = apperrors.ErrDuplicateReference
)
