package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coin transaction types
const (
	CoinTransactionCredit      = "credit"
	CoinTransactionDebit       = "debit"
	CoinTransactionTransferIn  = "transfer_in"
	CoinTransactionTransferOut = "transfer_out"
	CoinTransactionSet         = "set"
)

// CoinTransaction is the append-only audit record written alongside every
// balance mutation. Reference is unique, which makes credits keyed by an
// external reference (e.g. a payment intent) apply at most once.
type CoinTransaction struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	Reference          string          `gorm:"uniqueIndex;size:100;not null" json:"reference"`
	UserID             uint            `gorm:"index;not null" json:"userId"`
	CounterpartyUserID *uint           `json:"counterpartyUserId,omitempty"`
	Type               string          `gorm:"size:20;not null" json:"type"`
	Amount             decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	BalanceAfter       decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"balanceAfter"`
	Description        string          `gorm:"size:500" json:"description,omitempty"`
	CreatedAt          time.Time       `gorm:"index" json:"createdAt"`
}

func (CoinTransaction) TableName() string {
	return "coin_transactions"
}
