package wallet

import (
	"context"
	"errors"
	"time"

	"daswos/internal/models"
	"daswos/internal/repositories"
	"daswos/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type service struct {
	repo    repositories.WalletRepository
	cache   CacheOperator
	config  Config
	metrics MetricsCollector
	log     logrus.FieldLogger
}

// NewService creates a new wallet service
func NewService(
	repo repositories.WalletRepository,
	cache CacheOperator,
	config Config,
	metrics MetricsCollector,
	log logrus.FieldLogger,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &service{
		repo:    repo,
		cache:   cache,
		config:  config,
		metrics: metrics,
		log:     log,
	}
}

func (s *service) GetOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if userID == models.SystemUserID {
		// Only ProvisionSystemWallet creates the system wallet.
		return s.GetSystemWallet(ctx)
	}

	if wallet := s.cachedWallet(ctx, userID); wallet != nil {
		return wallet, nil
	}

	wallet, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		s.cacheWallet(ctx, wallet)
		return wallet, nil
	}
	if !errors.Is(err, ErrWalletNotFound) {
		s.recordFailure("get_or_create", userID, err)
		return nil, err
	}

	wallet, created, err := s.repo.CreateIfAbsent(ctx, userID, decimal.Zero, s.now())
	if err != nil {
		s.recordFailure("get_or_create", userID, err)
		return nil, err
	}
	if created {
		s.metrics.RecordWalletCreated(userID)
		s.log.WithField("user_id", userID).Info("Wallet created")
	}

	s.cacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) GetSystemWallet(ctx context.Context) (*models.Wallet, error) {
	if wallet := s.cachedWallet(ctx, models.SystemUserID); wallet != nil {
		return wallet, nil
	}

	wallet, err := s.repo.GetByUserID(ctx, models.SystemUserID)
	if err != nil {
		s.recordFailure("get_system_wallet", models.SystemUserID, err)
		return nil, err
	}

	s.cacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) UpdateBalance(ctx context.Context, userID uint, newBalance decimal.Decimal) (*models.Wallet, error) {
	if err := validation.ValidateBalance(newBalance); err != nil {
		return nil, err
	}

	var updated *models.Wallet
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.WalletRepository) error {
		wallet, err := tx.SetBalance(ctx, userID, newBalance, s.now())
		if err != nil {
			return err
		}
		updated = wallet

		return tx.CreateTransaction(ctx, &models.CoinTransaction{
			Reference:    newReference(referencePrefixSet),
			UserID:       userID,
			Type:         models.CoinTransactionSet,
			Amount:       newBalance,
			BalanceAfter: wallet.Balance,
			Description:  "Balance set",
		})
	})
	if err != nil {
		s.recordFailure("update_balance", userID, err)
		return nil, err
	}

	s.refreshWallet(ctx, updated)
	s.metrics.RecordOperationResult("update_balance", "success")
	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"system":  updated.IsSystem(),
		"balance": updated.Balance.String(),
	}).Info("Wallet balance set")

	return updated, nil
}

func (s *service) Credit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) (*models.Wallet, error) {
	return s.adjust(ctx, referencePrefixCredit, userID, amount, amount, reference, models.CoinTransactionCredit)
}

func (s *service) Debit(ctx context.Context, userID uint, amount decimal.Decimal, reference string) (*models.Wallet, error) {
	return s.adjust(ctx, referencePrefixDebit, userID, amount.Neg(), amount, reference, models.CoinTransactionDebit)
}

// adjust applies delta with the store's conditional increment and records
// the movement in the same transaction.
func (s *service) adjust(
	ctx context.Context,
	op string,
	userID uint,
	delta, amount decimal.Decimal,
	reference, txType string,
) (*models.Wallet, error) {
	if err := validation.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := validation.ValidateReference(reference); err != nil {
		return nil, err
	}
	if reference == "" {
		reference = newReference(op)
	}

	var updated *models.Wallet
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.WalletRepository) error {
		wallet, err := tx.AdjustBalance(ctx, userID, delta, s.now())
		if err != nil {
			return err
		}
		updated = wallet

		return tx.CreateTransaction(ctx, &models.CoinTransaction{
			Reference:    reference,
			UserID:       userID,
			Type:         txType,
			Amount:       amount,
			BalanceAfter: wallet.Balance,
		})
	})
	if err != nil {
		s.recordFailure(op, userID, err)
		return nil, err
	}

	s.refreshWallet(ctx, updated)
	s.metrics.RecordBalanceChange(userID, delta)
	s.metrics.RecordOperationResult(op, "success")
	s.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"system":    updated.IsSystem(),
		"amount":    amount.String(),
		"reference": reference,
		"balance":   updated.Balance.String(),
	}).Info("Wallet " + op)

	return updated, nil
}

func (s *service) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	if req.FromUserID == req.ToUserID {
		return nil, ErrInvalidArgument.WithMessage("cannot transfer to the same wallet")
	}
	if err := validation.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validation.ValidateDescription(req.Description); err != nil {
		return nil, err
	}

	reference := newReference(referencePrefixTransfer)
	result := &TransferResult{Reference: reference}

	type leg struct {
		userID       uint
		counterparty uint
		delta        decimal.Decimal
		txType       string
		suffix       string
		dest         **models.Wallet
	}
	legs := []leg{
		{req.FromUserID, req.ToUserID, req.Amount.Neg(), models.CoinTransactionTransferOut, ":out", &result.From},
		{req.ToUserID, req.FromUserID, req.Amount, models.CoinTransactionTransferIn, ":in", &result.To},
	}
	// Touch rows in user id order so opposing transfers cannot deadlock.
	if legs[1].userID < legs[0].userID {
		legs[0], legs[1] = legs[1], legs[0]
	}

	at := s.now()
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.WalletRepository) error {
		for _, l := range legs {
			wallet, err := tx.AdjustBalance(ctx, l.userID, l.delta, at)
			if err != nil {
				return err
			}
			*l.dest = wallet

			counterparty := l.counterparty
			if err := tx.CreateTransaction(ctx, &models.CoinTransaction{
				Reference:          reference + l.suffix,
				UserID:             l.userID,
				CounterpartyUserID: &counterparty,
				Type:               l.txType,
				Amount:             req.Amount,
				BalanceAfter:       wallet.Balance,
				Description:        req.Description,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.recordFailure("transfer", req.FromUserID, err)
		return nil, err
	}

	s.refreshWallet(ctx, result.From)
	s.refreshWallet(ctx, result.To)
	s.metrics.RecordBalanceChange(req.FromUserID, req.Amount.Neg())
	s.metrics.RecordBalanceChange(req.ToUserID, req.Amount)
	s.metrics.RecordOperationResult("transfer", "success")
	s.log.WithFields(logrus.Fields{
		"from_user_id": req.FromUserID,
		"to_user_id":   req.ToUserID,
		"amount":       req.Amount.String(),
		"reference":    reference,
	}).Info("Wallet transfer")

	return result, nil
}

func (s *service) ListTransactions(ctx context.Context, userID uint, limit, offset int) (*TransactionPage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	txs, total, err := s.repo.ListTransactions(ctx, userID, limit, offset)
	if err != nil {
		s.recordFailure("list_transactions", userID, err)
		return nil, err
	}
	if txs == nil {
		txs = []models.CoinTransaction{}
	}

	return &TransactionPage{
		Transactions: txs,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (s *service) ProvisionSystemWallet(ctx context.Context, openingBalance decimal.Decimal) (*models.Wallet, bool, error) {
	if err := validation.ValidateBalance(openingBalance); err != nil {
		return nil, false, err
	}

	var (
		wallet  *models.Wallet
		created bool
	)
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.WalletRepository) error {
		var err error
		wallet, created, err = tx.CreateIfAbsent(ctx, models.SystemUserID, openingBalance, s.now())
		if err != nil || !created || openingBalance.IsZero() {
			return err
		}

		return tx.CreateTransaction(ctx, &models.CoinTransaction{
			Reference:    newReference(referencePrefixSet),
			UserID:       models.SystemUserID,
			Type:         models.CoinTransactionSet,
			Amount:       openingBalance,
			BalanceAfter: wallet.Balance,
			Description:  "System wallet opening balance",
		})
	})
	if err != nil {
		s.recordFailure("provision_system_wallet", models.SystemUserID, err)
		return nil, false, err
	}

	if created {
		s.metrics.RecordWalletCreated(models.SystemUserID)
		s.refreshWallet(ctx, wallet)
		s.log.WithField("balance", wallet.Balance.String()).Info("System wallet provisioned")
	}
	return wallet, created, nil
}

// now returns the mutation timestamp at the store's precision.
func (s *service) now() time.Time {
	return s.config.Now().UTC().Truncate(time.Microsecond)
}

func (s *service) recordFailure(op string, userID uint, err error) {
	s.metrics.RecordOperationResult(op, "error")

	entry := s.log.WithFields(logrus.Fields{
		"operation": op,
		"user_id":   userID,
	}).WithError(err)
	if errors.Is(err, ErrStoreUnavailable) {
		entry.Error("Wallet operation failed")
		return
	}
	entry.Debug("Wallet operation rejected")
}

func newReference(prefix string) string {
	return prefix + ":" + uuid.NewString()
}
