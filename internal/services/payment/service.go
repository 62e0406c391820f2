package payment

import (
	"context"
	"errors"

	apperrors "daswos/internal/errors"
	"daswos/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type service struct {
	provider      Provider
	walletService WalletService
	log           logrus.FieldLogger
}

// NewService creates a new payment service
func NewService(provider Provider, walletSvc WalletService, log logrus.FieldLogger) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{
		provider:      provider,
		walletService: walletSvc,
		log:           log,
	}
}

func (s *service) StartCoinPurchase(ctx context.Context, userID uint, coins int64) (*PurchaseSession, error) {
	if err := validation.ValidateCoins(decimal.NewFromInt(coins)); err != nil {
		return nil, err
	}

	// The wallet must exist before money is taken for it.
	if _, err := s.walletService.GetOrCreateWallet(ctx, userID); err != nil {
		return nil, err
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, userID, coins)
	if err != nil {
		s.log.WithField("user_id", userID).WithError(err).Error("Failed to create payment intent")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"intent_id": intent.ID,
		"coins":     coins,
	}).Info("Coin purchase started")

	return &PurchaseSession{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Coins:        intent.Coins,
		AmountCents:  intent.AmountCents,
		Currency:     intent.Currency,
	}, nil
}

func (s *service) CompleteCoinPurchase(ctx context.Context, userID uint, intentID string) (*PurchaseResult, error) {
	if intentID == "" {
		return nil, apperrors.ErrInvalidArgument.WithMessage("payment intent id is required")
	}

	intent, err := s.provider.RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.UserID != userID {
		return nil, apperrors.ErrInvalidArgument.WithMessage("payment intent %s does not belong to user %d", intentID, userID)
	}

	return s.apply(ctx, intent)
}

func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*PurchaseResult, error) {
	intent, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		s.log.WithError(err).Warn("Rejected payment webhook")
		return nil, err
	}
	if intent == nil {
		return &PurchaseResult{Ignored: true}, nil
	}

	return s.apply(ctx, intent)
}

// apply credits a succeeded intent exactly once; the coin transaction
// reference is unique per intent.
func (s *service) apply(ctx context.Context, intent *Intent) (*PurchaseResult, error) {
	if !intent.Succeeded() {
		return nil, apperrors.ErrPaymentNotCompleted.WithMessage("payment intent %s is %s", intent.ID, intent.Status)
	}

	result := &PurchaseResult{IntentID: intent.ID, Coins: intent.Coins}
	logger := s.log.WithFields(logrus.Fields{
		"user_id":   intent.UserID,
		"intent_id": intent.ID,
		"coins":     intent.Coins,
	})

	wallet, err := s.walletService.Credit(ctx, intent.UserID, decimal.NewFromInt(intent.Coins), Reference(intent.ID))
	switch {
	case err == nil:
		result.Wallet = wallet
		logger.Info("Coin purchase credited")
	case errors.Is(err, apperrors.ErrDuplicateReference):
		wallet, err = s.walletService.GetOrCreateWallet(ctx, intent.UserID)
		if err != nil {
			return nil, err
		}
		result.Wallet = wallet
		result.AlreadyApplied = true
		logger.Debug("Coin purchase already credited")
	default:
		logger.WithError(err).Error("Failed to credit coin purchase")
		return nil, err
	}

	return result, nil
}
