package validation

import "github.com/shopspring/decimal"

const (
	// Amounts are stored as numeric(20,2).
	MaxAmountScale = 2

	MaxCoinsPerPurchase = 100000

	// String lengths
	MaxDescriptionLength = 500
	MaxReferenceLength   = 100
)

// MaxBalance is the largest value numeric(20,2) can hold.
var MaxBalance = decimal.RequireFromString("999999999999999999.99")
