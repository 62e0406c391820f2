package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "daswos/internal/errors"
	"daswos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, translateError("get wallet", err)
	}
	return &wallet, nil
}

func (r *walletRepository) CreateIfAbsent(ctx context.Context, userID uint, opening decimal.Decimal, at time.Time) (*models.Wallet, bool, error) {
	wallet := models.Wallet{
		UserID:      userID,
		Balance:     opening,
		LastUpdated: at,
		Version:     1,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&wallet)
	if result.Error != nil {
		return nil, false, translateError("create wallet", result.Error)
	}
	if result.RowsAffected == 1 {
		return &wallet, true, nil
	}

	// Lost the race: somebody else's row is the wallet.
	existing, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *walletRepository) SetBalance(ctx context.Context, userID uint, balance decimal.Decimal, at time.Time) (*models.Wallet, error) {
	var wallet models.Wallet
	result := r.db.WithContext(ctx).
		Model(&wallet).
		Clauses(clause.Returning{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":      balance,
			"last_updated": at,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return nil, translateError("set balance", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrWalletNotFound
	}
	return &wallet, nil
}

func (r *walletRepository) AdjustBalance(ctx context.Context, userID uint, delta decimal.Decimal, at time.Time) (*models.Wallet, error) {
	var wallet models.Wallet
	result := r.db.WithContext(ctx).
		Model(&wallet).
		Clauses(clause.Returning{}).
		Where("user_id = ? AND balance + ? >= 0", userID, delta).
		Updates(map[string]interface{}{
			"balance":      gorm.Expr("balance + ?", delta),
			"last_updated": at,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return nil, translateError("adjust balance", result.Error)
	}
	if result.RowsAffected == 1 {
		return &wallet, nil
	}

	// Nothing matched: either there is no wallet or the guard refused it.
	if _, err := r.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return nil, apperrors.ErrInsufficientBalance
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *models.CoinTransaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return translateError("create coin transaction", err)
	}
	return nil
}

func (r *walletRepository) ListTransactions(ctx context.Context, userID uint, limit, offset int) ([]models.CoinTransaction, int64, error) {
	var (
		txs   []models.CoinTransaction
		total int64
	)

	byUser := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.CoinTransaction{}).Where("user_id = ?", userID)
	}
	if err := byUser().Count(&total).Error; err != nil {
		return nil, 0, translateError("count coin transactions", err)
	}

	err := byUser().
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, translateError("list coin transactions", err)
	}
	return txs, total, nil
}

func (r *walletRepository) ExecuteInTransaction(ctx context.Context, fn func(WalletRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
	if err == nil {
		return nil
	}

	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return translateError("wallet transaction", err)
}

// translateError maps driver errors onto the domain taxonomy. Context
// cancellation is passed through so callers can tell it apart from an
// unreachable store.
func translateError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrWalletNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrDuplicateReference.Wrap(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return apperrors.ErrStoreUnavailable.Wrap(fmt.Errorf("%s: %w", op, err))
	}
}
