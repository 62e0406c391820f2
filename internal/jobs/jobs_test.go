package jobs

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	apperrors "daswos/internal/errors"
	"daswos/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWallets struct {
	wallet *models.Wallet
	err    error
}

func (s stubWallets) GetSystemWallet(context.Context) (*models.Wallet, error) {
	return s.wallet, s.err
}

func TestSystemWalletCheckJob(t *testing.T) {
	tests := []struct {
		name      string
		wallets   stubWallets
		wantLevel logrus.Level
	}{
		{"present", stubWallets{wallet: &models.Wallet{Balance: decimal.NewFromInt(5)}}, logrus.DebugLevel},
		{"missing", stubWallets{err: apperrors.ErrWalletNotFound}, logrus.WarnLevel},
		{"store down", stubWallets{err: apperrors.ErrStoreUnavailable.Wrap(errors.New("refused"))}, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			log.SetLevel(logrus.DebugLevel)

			SystemWalletCheckJob(tt.wallets, log)()

			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, tt.wantLevel, hook.LastEntry().Level)
		})
	}
}

func TestDBStatsJob(t *testing.T) {
	log, hook := test.NewNullLogger()

	DBStatsJob(func() sql.DBStats {
		return sql.DBStats{OpenConnections: 3, Idle: 1, InUse: 2, WaitDuration: time.Second}
	}, log)()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, 3, entry.Data["open"])
	assert.Equal(t, "1s", entry.Data["wait_duration"])
}

func TestScheduler(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewScheduler(log)

	assert.Error(t, s.Add("bad", "not a schedule", func() {}))

	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("tick", "@every 1s", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))

	s.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	}()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled job did not run")
	}
}
