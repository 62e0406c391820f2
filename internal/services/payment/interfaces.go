package payment

import (
	"context"

	"daswos/internal/models"

	"github.com/shopspring/decimal"
)

// Service sells coins for money and credits them to the buyer's wallet.
type Service interface {
	// StartCoinPurchase creates a provider intent priced for coins.
	StartCoinPurchase(ctx context.Context, userID uint, coins int64) (*PurchaseSession, error)

	// CompleteCoinPurchase credits a succeeded intent owned by userID.
	CompleteCoinPurchase(ctx context.Context, userID uint, intentID string) (*PurchaseResult, error)

	// HandleWebhook verifies a provider event and credits it when it
	// reports a succeeded intent. Other event types are acknowledged and
	// ignored.
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*PurchaseResult, error)
}

// Provider is the payment gateway.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, userID uint, coins int64) (*Intent, error)
	RetrievePaymentIntent(ctx context.Context, id string) (*Intent, error)

	// ParseWebhook returns a nil Intent for events that do not concern
	// coin purchases.
	ParseWebhook(payload []byte, signature string) (*Intent, error)
}

// Dependencies required by the payment service
type WalletService interface {
	GetOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	Credit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) (*models.Wallet, error)
}
