package types

import "github.com/corvuschain/corvus/amount"

// WalletRepository is the single source of wallet state for the transaction
// handlers. FindByAddress creates and indexes an empty wallet on first
// access, so handlers never observe a nil wallet.
//
// Callers must serialize apply/revert per wallet; the repository itself only
// guarantees safe concurrent lookups.
type WalletRepository interface {
	FindByAddress(addr string) *Wallet
	FindByLockID(lockTxID string) (*Wallet, bool)
	Has(addr string) bool
	Index(w *Wallet)
	IndexLock(lockTxID string, w *Wallet)
	ForgetLock(lockTxID string)
}

// TransactionRepository is the historical store consumed by handler
// bootstrap and by the HTLC handlers when reverting claims and refunds.
type TransactionRepository interface {
	Save(tx *Transaction) error
	FindByID(id string) (*Transaction, error)
	FindByType(t TxType) ([]*Transaction, error)

	// ReceivedTotals sums historical transfer amounts per recipient
	// address. Used once at startup to rebuild derived balances.
	ReceivedTotals() (map[string]amount.Amount, error)
}
