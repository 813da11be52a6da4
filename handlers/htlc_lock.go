package handlers

import (
	"github.com/corvuschain/corvus/config"
	"github.com/corvuschain/corvus/types"
)

// HtlcLockHandler escrows an amount under a hash of a secret until either
// the recipient claims it or the lock expires and the sender refunds it.
// The locked amount leaves the spendable balance and is tracked in the
// sender wallet's LockedBalance.
type HtlcLockHandler struct {
	baseHandler
}

func NewHtlcLockHandler(base baseHandler) *HtlcLockHandler {
	return &HtlcLockHandler{baseHandler: base}
}

func (h *HtlcLockHandler) Type() types.TxType { return types.TxHtlcLock }
func (h *HtlcLockHandler) Version() uint8     { return 1 }

// Bootstrap restores the locks that were never claimed or refunded.
func (h *HtlcLockHandler) Bootstrap() error {
	closed := make(map[string]struct{})
	claims, err := h.txs.FindByType(types.TxHtlcClaim)
	if err != nil {
		return err
	}
	for _, tx := range claims {
		closed[tx.Asset.Claim.LockTransactionID] = struct{}{}
	}
	refunds, err := h.txs.FindByType(types.TxHtlcRefund)
	if err != nil {
		return err
	}
	for _, tx := range refunds {
		closed[tx.Asset.Refund.LockTransactionID] = struct{}{}
	}

	locks, err := h.txs.FindByType(types.TxHtlcLock)
	if err != nil {
		return err
	}
	open := 0
	for _, tx := range locks {
		if _, ok := closed[tx.ID]; ok {
			continue
		}
		locker := h.wallets.FindByAddress(tx.SenderAddress)
		h.attachLock(tx, locker)
		h.wallets.Index(locker)
		open++
	}
	h.log.WithField("open", open).Info("replayed open htlc locks")
	return nil
}

func (h *HtlcLockHandler) CheckApply(tx *types.Transaction, sender *types.Wallet) error {
	if err := h.checkSender(tx, sender, int64(tx.Amount+tx.Fee)); err != nil {
		return err
	}
	duration := tx.Asset.Lock.Expiration - tx.Timestamp
	if duration <= 0 {
		return ErrLockExpired
	}
	if duration < config.MinLockDuration || duration > config.MaxLockDuration {
		return ErrLockDuration
	}
	return nil
}

func (h *HtlcLockHandler) ApplyToSender(tx *types.Transaction) error {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	if err := h.CheckApply(tx, sender); err != nil {
		return err
	}
	sender = h.debitSender(tx)
	h.attachLock(tx, sender)
	h.wallets.Index(sender)
	return nil
}

// ApplyToRecipient is a no-op: the recipient only receives funds on claim.
func (h *HtlcLockHandler) ApplyToRecipient(tx *types.Transaction) error {
	return nil
}

func (h *HtlcLockHandler) RevertForSender(tx *types.Transaction) error {
	sender := h.creditSender(tx)
	sender.LockedBalance -= tx.Amount
	delete(sender.Locks, tx.ID)
	h.wallets.ForgetLock(tx.ID)
	h.wallets.Index(sender)
	return nil
}

func (h *HtlcLockHandler) RevertForRecipient(tx *types.Transaction) error {
	return nil
}

func (h *HtlcLockHandler) attachLock(tx *types.Transaction, locker *types.Wallet) {
	if locker.Locks == nil {
		locker.Locks = make(map[string]*types.HtlcLock)
	}
	locker.LockedBalance += tx.Amount
	locker.Locks[tx.ID] = &types.HtlcLock{
		Amount:           tx.Amount,
		SecretHash:       tx.Asset.Lock.SecretHash,
		Expiration:       tx.Asset.Lock.Expiration,
		RecipientAddress: tx.RecipientAddress,
	}
	h.wallets.IndexLock(tx.ID, locker)
}
