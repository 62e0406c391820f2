package validation

import (
	apperrors "daswos/internal/errors"

	"github.com/shopspring/decimal"
)

// ValidateAmount checks a credit, debit or transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidArgument.WithMessage("amount must be greater than 0, got %s", amount)
	}
	return checkRepresentable("amount", amount)
}

// ValidateBalance checks a value used as an absolute balance.
func ValidateBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return apperrors.ErrInvalidArgument.WithMessage("balance must not be negative, got %s", balance)
	}
	return checkRepresentable("balance", balance)
}

// ValidateCoins checks a coin purchase quantity: whole coins only.
func ValidateCoins(coins decimal.Decimal) error {
	if !coins.IsPositive() || !coins.IsInteger() {
		return apperrors.ErrInvalidArgument.WithMessage("coins must be a positive whole number, got %s", coins)
	}
	if coins.GreaterThan(decimal.NewFromInt(MaxCoinsPerPurchase)) {
		return apperrors.ErrInvalidArgument.WithMessage("coins must not exceed %d", MaxCoinsPerPurchase)
	}
	return nil
}

// ValidateReference checks an optional caller-supplied transaction reference.
func ValidateReference(reference string) error {
	if len(reference) > MaxReferenceLength {
		return apperrors.ErrInvalidArgument.WithMessage("reference must be at most %d characters", MaxReferenceLength)
	}
	return nil
}

// ValidateDescription checks a free-text transaction description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return apperrors.ErrInvalidArgument.WithMessage("description must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}

func checkRepresentable(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(MaxAmountScale)) {
		return apperrors.ErrInvalidArgument.WithMessage("%s must have at most %d decimal places", field, MaxAmountScale)
	}
	if d.Abs().GreaterThan(MaxBalance) {
		return apperrors.ErrInvalidArgument.WithMessage("%s is out of range", field)
	}
	return nil
}
