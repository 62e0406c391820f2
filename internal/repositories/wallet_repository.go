package repositories

import (
	"context"
	"time"

	"daswos/internal/models"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the store operations behind the wallet ledger.
// Every method is a single round trip (or a single transaction) and returns
// errors from daswos/internal/errors: ErrWalletNotFound, ErrStoreUnavailable,
// ErrInsufficientBalance, ErrDuplicateReference.
type WalletRepository interface {
	// GetByUserID returns the wallet for userID.
	GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error)

	// CreateIfAbsent inserts a wallet for userID unless one exists, then
	// returns the stored row. created is false when another writer got there
	// first; the unique index on user_id guarantees a single row either way.
	CreateIfAbsent(ctx context.Context, userID uint, opening decimal.Decimal, at time.Time) (wallet *models.Wallet, created bool, err error)

	// SetBalance overwrites the balance. It never creates a wallet.
	// SetBalance and AdjustBalance both bump the wallet's Version.
	SetBalance(ctx context.Context, userID uint, balance decimal.Decimal, at time.Time) (*models.Wallet, error)

	// AdjustBalance adds delta (which may be negative) in one conditional
	// statement that refuses to take the balance below zero.
	AdjustBalance(ctx context.Context, userID uint, delta decimal.Decimal, at time.Time) (*models.Wallet, error)

	// Coin transaction log
	CreateTransaction(ctx context.Context, tx *models.CoinTransaction) error
	ListTransactions(ctx context.Context, userID uint, limit, offset int) ([]models.CoinTransaction, int64, error)

	// ExecuteInTransaction runs fn against a repository bound to one
	// database transaction. Returning an error rolls everything back.
	ExecuteInTransaction(ctx context.Context, fn func(WalletRepository) error) error
}
