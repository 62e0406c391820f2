package wallet

// Transaction history paging
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Reference prefixes for generated coin transaction references
const (
	referencePrefixCredit   = "credit"
	referencePrefixDebit    = "debit"
	referencePrefixSet      = "set"
	referencePrefixTransfer = "transfer"
)
