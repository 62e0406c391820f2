package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemUserID is the reserved wallet owner used as the counterparty for
// platform- and AI-issued coin movements.
const SystemUserID uint = 0

// Wallet holds a user's coin balance. There is at most one row per UserID.
type Wallet struct {
	ID          uint            `gorm:"primarykey" json:"-"`
	UserID      uint            `gorm:"uniqueIndex;not null" json:"userId"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"balance"`
	LastUpdated time.Time       `gorm:"not null" json:"lastUpdated"`
	// Version starts at 1 and is bumped by every balance write.
	Version     uint64          `gorm:"not null;default:1" json:"-"`
	CreatedAt   time.Time       `json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// IsSystem reports whether w is the system wallet.
func (w *Wallet) IsSystem() bool {
	return w.UserID == SystemUserID
}
