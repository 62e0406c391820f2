package payment

import "daswos/internal/models"

// Intent statuses the service cares about.
const (
	IntentStatusSucceeded = "succeeded"
)

// Metadata keys written on every intent.
const (
	metadataUserID = "user_id"
	metadataCoins  = "coins"
)

// Intent is a provider-neutral view of a payment intent.
type Intent struct {
	ID           string
	UserID       uint
	Coins        int64
	AmountCents  int64
	Currency     string
	Status       string
	ClientSecret string
}

// Succeeded reports whether the money has been captured.
func (i *Intent) Succeeded() bool {
	return i.Status == IntentStatusSucceeded
}

// PurchaseSession is returned to the client to confirm payment.
type PurchaseSession struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	Coins        int64  `json:"coins"`
	AmountCents  int64  `json:"amountCents"`
	Currency     string `json:"currency"`
}

// PurchaseResult describes a credited (or previously credited) purchase.
type PurchaseResult struct {
	IntentID       string         `json:"intentId"`
	Coins          int64          `json:"coins"`
	Wallet         *models.Wallet `json:"wallet,omitempty"`
	AlreadyApplied bool           `json:"alreadyApplied"`
	Ignored        bool           `json:"ignored,omitempty"`
}

// Reference returns the coin transaction reference for an intent.
func Reference(intentID string) string {
	return "stripe:" + intentID
}
