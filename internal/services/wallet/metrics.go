package wallet

import "github.com/shopspring/decimal"

// MetricsCollector receives ledger events.
type MetricsCollector interface {
	RecordOperationResult(operation, result string)
	RecordCacheHit(userID uint)
	RecordCacheMiss(userID uint)
	RecordBalanceChange(userID uint, delta decimal.Decimal)
	RecordWalletCreated(userID uint)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationResult(string, string)      {}
func (n *NoopMetricsCollector) RecordCacheHit(uint)                       {}
func (n *NoopMetricsCollector) RecordCacheMiss(uint)                      {}
func (n *NoopMetricsCollector) RecordBalanceChange(uint, decimal.Decimal) {}
func (n *NoopMetricsCollector) RecordWalletCreated(uint)                  {}
