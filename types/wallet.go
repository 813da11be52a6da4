package types

import "github.com/corvuschain/corvus/amount"

// Wallet is the mutable ledger entry for one address: balance, nonce and the
// kind-specific attributes handlers maintain. Wallets are mutated in place
// during apply and revert and are never deleted, only updated.
type Wallet struct {
	Address       string        `cbor:"address"`
	PublicKey     string        `cbor:"publicKey,omitempty"`
	Balance       amount.Amount `cbor:"balance"`
	Nonce         uint64        `cbor:"nonce"`
	LockedBalance amount.Amount `cbor:"lockedBalance,omitempty"`

	// Delegate is set once the wallet registers as a delegate.
	Delegate *DelegateInfo `cbor:"delegate,omitempty"`

	// Locks holds the wallet's open HTLC locks, keyed by the lock
	// transaction ID. The locked amounts live in LockedBalance, outside
	// the spendable Balance.
	Locks map[string]*HtlcLock `cbor:"locks,omitempty"`
}

type DelegateInfo struct {
	Username     string `cbor:"username"`
	RegisteredAt int64  `cbor:"registeredAt"`
}

// HtlcLock is the wallet-side record of an open time-locked transfer.
type HtlcLock struct {
	Amount           amount.Amount `cbor:"amount"`
	SecretHash       string        `cbor:"secretHash"`
	Expiration       int64         `cbor:"expiration"`
	RecipientAddress string        `cbor:"recipient"`
}

// NewWallet returns a fresh wallet for an address not seen before.
func NewWallet(addr string) *Wallet {
	return &Wallet{Address: addr}
}

// IsDelegate reports whether the wallet has registered a delegate username.
func (w *Wallet) IsDelegate() bool {
	return w.Delegate != nil
}

// Clone returns a deep copy, used for pre-apply snapshots in tests and
// rollback verification.
func (w *Wallet) Clone() *Wallet {
	clone := *w
	if w.Delegate != nil {
		d := *w.Delegate
		clone.Delegate = &d
	}
	if w.Locks != nil {
		clone.Locks = make(map[string]*HtlcLock, len(w.Locks))
		for id, lock := range w.Locks {
			l := *lock
			clone.Locks[id] = &l
		}
	}
	return &clone
}
