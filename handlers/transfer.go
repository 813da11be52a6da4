package handlers

import (
	"github.com/corvuschain/corvus/types"
)

// TransferHandler moves value between two wallets.
type TransferHandler struct {
	baseHandler
}

func NewTransferHandler(base baseHandler) *TransferHandler {
	return &TransferHandler{baseHandler: base}
}

func (h *TransferHandler) Type() types.TxType { return types.TxTransfer }
func (h *TransferHandler) Version() uint8     { return 1 }

// Bootstrap rebuilds received-transfer totals from the historical log,
// crediting each recipient with the exact sum of amounts sent to it.
func (h *TransferHandler) Bootstrap() error {
	totals, err := h.txs.ReceivedTotals()
	if err != nil {
		return err
	}
	for addr, total := range totals {
		recipient := h.wallets.FindByAddress(addr)
		recipient.Balance += total
		h.wallets.Index(recipient)
	}
	h.log.WithField("recipients", len(totals)).Info("replayed received transfers")
	return nil
}

func (h *TransferHandler) CheckApply(tx *types.Transaction, sender *types.Wallet) error {
	return h.checkSender(tx, sender, int64(tx.Amount+tx.Fee))
}

func (h *TransferHandler) ApplyToSender(tx *types.Transaction) error {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	if err := h.CheckApply(tx, sender); err != nil {
		return err
	}
	h.wallets.Index(h.debitSender(tx))
	return nil
}

func (h *TransferHandler) ApplyToRecipient(tx *types.Transaction) error {
	recipient := h.wallets.FindByAddress(tx.RecipientAddress)
	recipient.Balance += tx.Amount
	h.wallets.Index(recipient)
	return nil
}

func (h *TransferHandler) RevertForSender(tx *types.Transaction) error {
	h.wallets.Index(h.creditSender(tx))
	return nil
}

func (h *TransferHandler) RevertForRecipient(tx *types.Transaction) error {
	recipient := h.wallets.FindByAddress(tx.RecipientAddress)
	recipient.Balance -= tx.Amount
	h.wallets.Index(recipient)
	return nil
}
