// Package jobs runs the server's periodic maintenance tasks on a cron
// scheduler.
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "daswos/internal/errors"
	"daswos/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Schedules
const (
	DBStatsSchedule           = "@every 1m"
	SystemWalletCheckSchedule = "@every 10m"
)

const systemWalletCheckTimeout = 5 * time.Second

// SystemWalletGetter is the part of the wallet service the checker needs.
type SystemWalletGetter interface {
	GetSystemWallet(ctx context.Context) (*models.Wallet, error)
}

// Scheduler wraps a cron.Cron. Jobs recover from panics and are skipped
// while a previous run is still going.
type Scheduler struct {
	cron *cron.Cron
	log  logrus.FieldLogger
}

func NewScheduler(log logrus.FieldLogger) *Scheduler {
	cronLog := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLog),
			cron.SkipIfStillRunning(cronLog),
		)),
		log: log,
	}
}

// Add registers fn under spec.
func (s *Scheduler) Add(name, spec string, fn func()) error {
	if _, err := s.cron.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.log.WithFields(logrus.Fields{"job": name, "schedule": spec}).Info("Job scheduled")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Timed out waiting for running jobs")
	}
}

// RegisterDefaults adds the DB pool stats logger and the system wallet
// check.
func RegisterDefaults(s *Scheduler, db *sql.DB, wallets SystemWalletGetter) error {
	if err := s.Add("db_stats", DBStatsSchedule, DBStatsJob(db.Stats, s.log)); err != nil {
		return err
	}
	return s.Add("system_wallet_check", SystemWalletCheckSchedule, SystemWalletCheckJob(wallets, s.log))
}

// DBStatsJob logs connection pool statistics.
func DBStatsJob(stats func() sql.DBStats, log logrus.FieldLogger) func() {
	return func() {
		st := stats()
		log.WithFields(logrus.Fields{
			"open":          st.OpenConnections,
			"idle":          st.Idle,
			"in_use":        st.InUse,
			"wait_count":    st.WaitCount,
			"wait_duration": st.WaitDuration.String(),
		}).Info("DB stats")
	}
}

// SystemWalletCheckJob warns when the system wallet has not been
// provisioned.
func SystemWalletCheckJob(wallets SystemWalletGetter, log logrus.FieldLogger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), systemWalletCheckTimeout)
		defer cancel()

		w, err := wallets.GetSystemWallet(ctx)
		switch {
		case err == nil:
			log.WithField("balance", w.Balance.String()).Debug("System wallet present")
		case errors.Is(err, apperrors.ErrWalletNotFound):
			log.Warn("System wallet is not provisioned; run cmd/system_seed")
		default:
			log.WithError(err).Error("System wallet check failed")
		}
	}
}
