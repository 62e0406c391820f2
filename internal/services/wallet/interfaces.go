package wallet

import (
	"context"

	"daswos/internal/models"

	"github.com/shopspring/decimal"
)

// Service defines the main wallet service interface
type Service interface {
	// Core ledger operations
	GetOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	GetSystemWallet(ctx context.Context) (*models.Wallet, error)
	UpdateBalance(ctx context.Context, userID uint, newBalance decimal.Decimal) (*models.Wallet, error)

	// Atomic relative movements
	Credit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) (*models.Wallet, error)
	Debit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) (*models.Wallet, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)

	// History
	ListTransactions(ctx context.Context, userID uint, limit, offset int) (*TransactionPage, error)

	// Setup
	ProvisionSystemWallet(ctx context.Context, openingBalance decimal.Decimal) (*models.Wallet, bool, error)
}
