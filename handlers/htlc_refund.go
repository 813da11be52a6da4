package handlers

import (
	"github.com/corvuschain/corvus/types"
)

// HtlcRefundHandler returns an expired lock's amount to the wallet that
// created it. Like claims, the fee is paid out of the refunded amount.
type HtlcRefundHandler struct {
	baseHandler
}

func NewHtlcRefundHandler(base baseHandler) *HtlcRefundHandler {
	return &HtlcRefundHandler{baseHandler: base}
}

func (h *HtlcRefundHandler) Type() types.TxType { return types.TxHtlcRefund }
func (h *HtlcRefundHandler) Version() uint8     { return 1 }

// Bootstrap is a no-op; see HtlcClaimHandler.Bootstrap.
func (h *HtlcRefundHandler) Bootstrap() error {
	return nil
}

func (h *HtlcRefundHandler) CheckApply(tx *types.Transaction, sender *types.Wallet) error {
	if tx.Nonce != sender.Nonce+1 {
		return ErrNonceMismatch
	}
	lockTxID := tx.Asset.Refund.LockTransactionID
	locker, ok := h.wallets.FindByLockID(lockTxID)
	if !ok {
		return ErrLockNotFound
	}
	lock, ok := locker.Locks[lockTxID]
	if !ok {
		return ErrLockNotFound
	}
	if sender.Address != locker.Address {
		return ErrNotLockOwner
	}
	if tx.Timestamp < lock.Expiration {
		return ErrLockNotExpired
	}
	if tx.Fee > lock.Amount {
		return ErrFeeExceedsLock
	}
	return nil
}

func (h *HtlcRefundHandler) ApplyToSender(tx *types.Transaction) error {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	if err := h.CheckApply(tx, sender); err != nil {
		return err
	}
	h.wallets.Index(h.bumpNonce(tx))
	return nil
}

// ApplyToRecipient moves the expired lock's amount, net of the fee, back
// into the locker's spendable balance.
func (h *HtlcRefundHandler) ApplyToRecipient(tx *types.Transaction) error {
	lockTxID := tx.Asset.Refund.LockTransactionID
	locker, ok := h.wallets.FindByLockID(lockTxID)
	if !ok {
		return ErrLockNotFound
	}
	lock := locker.Locks[lockTxID]

	locker.LockedBalance -= lock.Amount
	locker.Balance += lock.Amount - tx.Fee
	delete(locker.Locks, lockTxID)
	h.wallets.ForgetLock(lockTxID)

	h.wallets.Index(locker)
	return nil
}

func (h *HtlcRefundHandler) RevertForSender(tx *types.Transaction) error {
	h.wallets.Index(h.unbumpNonce(tx))
	return nil
}

// RevertForRecipient re-creates the lock from the historical lock
// transaction and removes the refunded amount from the spendable balance.
func (h *HtlcRefundHandler) RevertForRecipient(tx *types.Transaction) error {
	lockTx, err := h.txs.FindByID(tx.Asset.Refund.LockTransactionID)
	if err != nil {
		return err
	}

	locker := h.wallets.FindByAddress(lockTx.SenderAddress)
	locker.Balance -= lockTx.Amount - tx.Fee
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
	return nil
}
