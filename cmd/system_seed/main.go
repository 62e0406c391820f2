// Command system_seed provisions the system wallet (user id 0). Running it
// again leaves an existing wallet untouched.
package main

import (
	"context"
	"fmt"
	"time"

	"daswos/internal/config"
	"daswos/internal/repositories"
	"daswos/internal/repositories/cache"
	"daswos/internal/services/wallet"
	"daswos/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	log := utils.NewLogger(cfg.LogLevel, cfg.IsProduction())

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Failed to provision system wallet")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	opening, err := decimal.NewFromString(cfg.SystemWalletOpeningBalance)
	if err != nil {
		return fmt.Errorf("SYSTEM_WALLET_OPENING_BALANCE: %w", err)
	}

	db, err := repositories.OpenDatabase(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := repositories.CloseDatabase(db); err != nil {
			log.WithError(err).Warn("Failed to close database connection")
		}
	}()

	svc := wallet.NewService(
		repositories.NewWalletRepository(db),
		cache.NoopWalletCache{},
		wallet.Config{},
		nil,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	w, created, err := svc.ProvisionSystemWallet(ctx, opening)
	if err != nil {
		return err
	}

	entry := log.WithField("balance", w.Balance.String())
	if created {
		entry.Info("System wallet created")
	} else {
		entry.Info("System wallet already exists")
	}
	return nil
}
