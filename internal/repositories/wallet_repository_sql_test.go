package repositories

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	apperrors "daswos/internal/errors"
	"daswos/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// statementLog collects the SQL a dry-run session builds.
type statementLog struct {
	mu  sync.Mutex
	sql []string
}

func (l *statementLog) record(db *gorm.DB) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sql = append(l.sql, db.Statement.SQL.String())
}

func (l *statementLog) statements() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.sql...)
}

// newDryRunRepository builds a repository on the postgres dialect that
// renders statements without opening a connection.
func newDryRunRepository(t *testing.T) (WalletRepository, *statementLog) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=daswos dbname=daswos sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	log := &statementLog{}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:record_create", log.record))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:record_query", log.record))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:record_update", log.record))

	return NewWalletRepository(db), log
}

func TestWalletRepository_CreateIfAbsentSQL(t *testing.T) {
	repo, log := newDryRunRepository(t)

	// A dry run affects no rows, which is what a conflicting insert reports.
	_, created, err := repo.CreateIfAbsent(context.Background(), 7, decimal.Zero, time.Now())
	require.NoError(t, err)
	assert.False(t, created)

	stmts := log.statements()
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], `INSERT INTO "wallets"`)
	assert.Contains(t, stmts[0], `ON CONFLICT ("user_id") DO NOTHING`)
	assert.Contains(t, stmts[1], `SELECT * FROM "wallets" WHERE user_id = $1`)
}

func TestWalletRepository_SetBalanceSQL(t *testing.T) {
	repo, log := newDryRunRepository(t)

	_, err := repo.SetBalance(context.Background(), 7, decimal.NewFromInt(75), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)

	stmts := log.statements()
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], `UPDATE "wallets" SET "balance"=$1`)
	assert.Contains(t, stmts[0], `"version"=version + 1`)
	assert.Contains(t, stmts[0], `WHERE user_id = $`)
	assert.Contains(t, stmts[0], "RETURNING *")
}

func TestWalletRepository_AdjustBalanceSQL(t *testing.T) {
	repo, log := newDryRunRepository(t)

	// No row matched the guard but the wallet read succeeds, so the guard
	// is what refused the update.
	_, err := repo.AdjustBalance(context.Background(), 7, decimal.NewFromInt(-5), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	assert.NotErrorIs(t, err, apperrors.ErrWalletNotFound)

	stmts := log.statements()
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], `UPDATE "wallets" SET "balance"=balance + $1`)
	assert.Contains(t, stmts[0], `"version"=version + 1`)
	assert.Contains(t, stmts[0], `AND balance + $`)
	assert.Contains(t, stmts[0], `>= 0`)
	assert.Contains(t, stmts[0], "RETURNING *")
	assert.Contains(t, stmts[1], `SELECT * FROM "wallets" WHERE user_id = $1`)
}

func TestWalletRepository_TransactionLogSQL(t *testing.T) {
	repo, log := newDryRunRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateTransaction(ctx, &models.CoinTransaction{
		Reference: "credit:abc",
		UserID:    7,
		Type:      models.CoinTransactionCredit,
		Amount:    decimal.NewFromInt(1),
	}))
	_, _, err := repo.ListTransactions(ctx, 7, 10, 20)
	require.NoError(t, err)

	stmts := log.statements()
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], `INSERT INTO "coin_transactions"`)
	assert.Contains(t, stmts[1], "count(*)")
	assert.Contains(t, stmts[1], "WHERE user_id = $1")
	assert.Contains(t, stmts[2], "ORDER BY created_at DESC,id DESC")
}

func TestWalletSchemaConstraints(t *testing.T) {
	field, ok := reflect.TypeOf(models.Wallet{}).FieldByName("UserID")
	require.True(t, ok)
	assert.Contains(t, field.Tag.Get("gorm"), "uniqueIndex")

	field, ok = reflect.TypeOf(models.CoinTransaction{}).FieldByName("Reference")
	require.True(t, ok)
	assert.Contains(t, field.Tag.Get("gorm"), "uniqueIndex")
}
