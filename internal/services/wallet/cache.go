package wallet

import (
	"context"

	"daswos/internal/models"
)

// Cache failures are logged and otherwise ignored: the store stays the
// source of truth.

func (s *service) cachedWallet(ctx context.Context, userID uint) *models.Wallet {
	wallet, found, err := s.cache.GetWallet(ctx, userID)
	if err != nil {
		s.log.WithField("user_id", userID).WithError(err).Warn("Wallet cache read failed")
		return nil
	}
	if !found {
		s.metrics.RecordCacheMiss(userID)
		return nil
	}
	s.metrics.RecordCacheHit(userID)
	return wallet
}

func (s *service) cacheWallet(ctx context.Context, wallet *models.Wallet) {
	if err := s.cache.SetWallet(ctx, wallet); err != nil {
		s.log.WithField("user_id", wallet.UserID).WithError(err).Warn("Wallet cache write failed")
	}
}

// refreshWallet writes a committed wallet through to the cache. If that
// fails the entry is dropped so no older version keeps being served.
func (s *service) refreshWallet(ctx context.Context, wallet *models.Wallet) {
	err := s.cache.SetWallet(ctx, wallet)
	if err == nil {
		return
	}
	s.log.WithField("user_id", wallet.UserID).WithError(err).Warn("Wallet cache refresh failed")

	if err := s.cache.DeleteWallet(ctx, wallet.UserID); err != nil {
		s.log.WithField("user_id", wallet.UserID).WithError(err).Error("Wallet cache invalidation failed")
	}
}
