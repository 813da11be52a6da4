package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/corvuschain/corvus/types"
)

// baseHandler carries the collaborators shared by every handler and the
// sender-side balance/nonce protocol common to all kinds.
type baseHandler struct {
	wallets types.WalletRepository
	txs     types.TransactionRepository
	log     *logrus.Entry
}

// checkSender verifies the invariants every kind shares: the nonce follows
// the wallet nonce and the spendable balance covers cost.
func (h *baseHandler) checkSender(tx *types.Transaction, sender *types.Wallet, cost int64) error {
	if tx.Nonce != sender.Nonce+1 {
		return ErrNonceMismatch
	}
	if int64(sender.Balance) < cost {
		return ErrInsufficientBalance
	}
	return nil
}

// debitSender removes amount+fee from the sender balance and advances the
// nonce. Callers must have passed CheckApply first.
func (h *baseHandler) debitSender(tx *types.Transaction) *types.Wallet {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	sender.Balance -= tx.Amount + tx.Fee
	sender.Nonce++
	return sender
}

// creditSender is the exact inverse of debitSender.
func (h *baseHandler) creditSender(tx *types.Transaction) *types.Wallet {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	sender.Balance += tx.Amount + tx.Fee
	sender.Nonce--
	return sender
}

// bumpNonce advances the sender nonce without touching the balance, for
// kinds whose fee is paid out of claimed funds.
func (h *baseHandler) bumpNonce(tx *types.Transaction) *types.Wallet {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	sender.Nonce++
	return sender
}

func (h *baseHandler) unbumpNonce(tx *types.Transaction) *types.Wallet {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	sender.Nonce--
	return sender
}
