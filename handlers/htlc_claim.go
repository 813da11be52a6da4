package handlers

import (
	"encoding/hex"

	"github.com/corvuschain/corvus/crypto/hash"
	"github.com/corvuschain/corvus/types"
)

// HtlcClaimHandler releases a locked amount to the lock recipient when it
// presents the unlock secret before the lock expires. The claim fee is paid
// out of the claimed amount, so a wallet with zero balance can still claim.
type HtlcClaimHandler struct {
	baseHandler
}

func NewHtlcClaimHandler(base baseHandler) *HtlcClaimHandler {
	return &HtlcClaimHandler{baseHandler: base}
}

func (h *HtlcClaimHandler) Type() types.TxType { return types.TxHtlcClaim }
func (h *HtlcClaimHandler) Version() uint8     { return 1 }

// Bootstrap is a no-op: claimed balances are part of the received totals the
// transfer bootstrap reconstructs, and closed locks are excluded by the lock
// bootstrap.
func (h *HtlcClaimHandler) Bootstrap() error {
	return nil
}

func (h *HtlcClaimHandler) CheckApply(tx *types.Transaction, sender *types.Wallet) error {
	if tx.Nonce != sender.Nonce+1 {
		return ErrNonceMismatch
	}
	lock, err := h.findLock(tx.Asset.Claim.LockTransactionID)
	if err != nil {
		return err
	}
	if tx.Timestamp >= lock.Expiration {
		return ErrLockExpired
	}
	if sender.Address != lock.RecipientAddress {
		return ErrNotLockRecipient
	}
	secret, err := hex.DecodeString(tx.Asset.Claim.UnlockSecret)
	if err != nil {
		return ErrSecretMismatch
	}
	if hash.Sum256d(secret).String() != lock.SecretHash {
		return ErrSecretMismatch
	}
	if tx.Fee > lock.Amount {
		return ErrFeeExceedsLock
	}
	return nil
}

func (h *HtlcClaimHandler) ApplyToSender(tx *types.Transaction) error {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	if err := h.CheckApply(tx, sender); err != nil {
		return err
	}
	h.wallets.Index(h.bumpNonce(tx))
	return nil
}

// ApplyToRecipient releases the lock: the locker's locked balance shrinks by
// the full amount and the lock recipient is credited net of the claim fee.
func (h *HtlcClaimHandler) ApplyToRecipient(tx *types.Transaction) error {
	lockTxID := tx.Asset.Claim.LockTransactionID
	locker, ok := h.wallets.FindByLockID(lockTxID)
	if !ok {
		return ErrLockNotFound
	}
	lock := locker.Locks[lockTxID]

	recipient := h.wallets.FindByAddress(lock.RecipientAddress)
	recipient.Balance += lock.Amount - tx.Fee

	locker.LockedBalance -= lock.Amount
	delete(locker.Locks, lockTxID)
	h.wallets.ForgetLock(lockTxID)

	h.wallets.Index(locker)
	h.wallets.Index(recipient)
	return nil
}

func (h *HtlcClaimHandler) RevertForSender(tx *types.Transaction) error {
	h.wallets.Index(h.unbumpNonce(tx))
	return nil
}

// RevertForRecipient re-creates the lock from the historical lock
// transaction and takes the claimed amount back from the recipient.
func (h *HtlcClaimHandler) RevertForRecipient(tx *types.Transaction) error {
	lockTx, err := h.txs.FindByID(tx.Asset.Claim.LockTransactionID)
	if err != nil {
		return err
	}

	recipient := h.wallets.FindByAddress(lockTx.RecipientAddress)
	recipient.Balance -= lockTx.Amount - tx.Fee

	locker := h.wallets.FindByAddress(lockTx.SenderAddress)
	if locker.Locks == nil {
		locker.Locks = make(map[string]*types.HtlcLock)
	}
	locker.LockedBalance += lockTx.Amount
	locker.Locks[lockTx.ID] = &types.HtlcLock{
		Amount:           lockTx.Amount,
		SecretHash:       lockTx.Asset.Lock.SecretHash,
		Expiration:       lockTx.Asset.Lock.Expiration,
		RecipientAddress: lockTx.RecipientAddress,
	}
	h.wallets.IndexLock(lockTx.ID, locker)

	h.wallets.Index(locker)
	h.wallets.Index(recipient)
	return nil
}

func (h *HtlcClaimHandler) findLock(lockTxID string) (*types.HtlcLock, error) {
	locker, ok := h.wallets.FindByLockID(lockTxID)
	if !ok {
		return nil, ErrLockNotFound
	}
	lock, ok := locker.Locks[lockTxID]
	if !ok {
		return nil, ErrLockNotFound
	}
	return lock, nil
}
