package wallet

import (
	"context"
	"time"

	"daswos/internal/models"

	"github.com/shopspring/decimal"
)

// Config holds wallet service settings.
type Config struct {
	// Now is the clock used for lastUpdated. Defaults to time.Now.
	Now func() time.Time
}

// TransferRequest moves coins between two wallets.
type TransferRequest struct {
	FromUserID  uint
	ToUserID    uint
	Amount      decimal.Decimal
	Description string
}

// TransferResult holds both wallets after a transfer.
type TransferResult struct {
	Reference string         `json:"reference"`
	From      *models.Wallet `json:"from"`
	To        *models.Wallet `json:"to"`
}

// TransactionPage is one page of a user's coin transactions.
type TransactionPage struct {
	Transactions []models.CoinTransaction `json:"transactions"`
	Total        int64                    `json:"total"`
	Limit        int                      `json:"limit"`
	Offset       int                      `json:"offset"`
}

// CacheOperator defines the caching operations the ledger needs.
type CacheOperator interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool, error)
	// SetWallet must keep an entry whose Version is >= wallet.Version.
	SetWallet(ctx context.Context, wallet *models.Wallet) error
	DeleteWallet(ctx context.Context, userID uint) error
}
