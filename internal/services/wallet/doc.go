/*
Package wallet is the coin ledger: the single source of truth for per-user
coin balances.

Operations:

	svc := wallet.NewService(repo, cache, wallet.Config{}, nil, log)

	// Lazily create (or fetch) a user's wallet. Safe under concurrent
	// first access: the store's unique index on user_id picks one row.
	// For user 0 it only returns the provisioned system wallet.
	w, err := svc.GetOrCreateWallet(ctx, userID)

	// The platform/AI counterparty wallet (user 0). Never auto-created.
	sys, err := svc.GetSystemWallet(ctx)

	// Absolute set, last writer wins. Never creates.
	w, err = svc.UpdateBalance(ctx, userID, decimal.NewFromInt(50))

	// Atomic relative movements; never drive a balance below zero.
	w, err = svc.Credit(ctx, userID, amount, "stripe:pi_123")
	w, err = svc.Debit(ctx, userID, amount, "")
	res, err := svc.Transfer(ctx, wallet.TransferRequest{...})

Every mutation appends a CoinTransaction in the same database transaction
and writes the committed wallet through to the cache afterwards. Cache
writes are versioned, so a read that started before a commit cannot
replace the newer entry.

Errors are *errors.DomainError values: ErrWalletNotFound,
ErrInvalidArgument, ErrStoreUnavailable, ErrInsufficientBalance and
ErrDuplicateReference. Nothing is retried here; UpdateBalance is safe to
retry blindly, Credit is safe to retry only with the same reference.
*/
package wallet
