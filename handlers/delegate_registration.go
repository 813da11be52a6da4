package handlers

import (
	"sync"

	"github.com/corvuschain/corvus/types"
)

// DelegateRegistrationHandler marks a wallet as a delegate under a unique
// username. The username index is derived state, rebuilt by bootstrap.
type DelegateRegistrationHandler struct {
	baseHandler

	mu        sync.RWMutex
	usernames map[string]string // username -> wallet address
}

func NewDelegateRegistrationHandler(base baseHandler) *DelegateRegistrationHandler {
	return &DelegateRegistrationHandler{
		baseHandler: base,
		usernames:   make(map[string]string),
	}
}

func (h *DelegateRegistrationHandler) Type() types.TxType { return types.TxDelegateRegistration }
func (h *DelegateRegistrationHandler) Version() uint8     { return 1 }

// Bootstrap replays historical registrations, restoring the delegate
// attribute and the username index.
func (h *DelegateRegistrationHandler) Bootstrap() error {
	registrations, err := h.txs.FindByType(types.TxDelegateRegistration)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, tx := range registrations {
		username := tx.Asset.Delegate.Username
		wallet := h.wallets.FindByAddress(tx.SenderAddress)
		wallet.Delegate = &types.DelegateInfo{
			Username:     username,
			RegisteredAt: tx.Timestamp,
		}
		h.usernames[username] = wallet.Address
		h.wallets.Index(wallet)
	}
	h.log.WithField("delegates", len(registrations)).Info("replayed delegate registrations")
	return nil
}

func (h *DelegateRegistrationHandler) CheckApply(tx *types.Transaction, sender *types.Wallet) error {
	if err := h.checkSender(tx, sender, int64(tx.Amount+tx.Fee)); err != nil {
		return err
	}
	if sender.IsDelegate() {
		return ErrAlreadyDelegate
	}
	h.mu.RLock()
	owner, taken := h.usernames[tx.Asset.Delegate.Username]
	h.mu.RUnlock()
	if taken && owner != sender.Address {
		return ErrUsernameTaken
	}
	return nil
}

func (h *DelegateRegistrationHandler) ApplyToSender(tx *types.Transaction) error {
	sender := h.wallets.FindByAddress(tx.SenderAddress)
	if err := h.CheckApply(tx, sender); err != nil {
		return err
	}
	sender = h.debitSender(tx)
	sender.Delegate = &types.DelegateInfo{
		Username:     tx.Asset.Delegate.Username,
		RegisteredAt: tx.Timestamp,
	}
	h.mu.Lock()
	h.usernames[tx.Asset.Delegate.Username] = sender.Address
	h.mu.Unlock()
	h.wallets.Index(sender)
	return nil
}

// ApplyToRecipient is a no-op: registrations have no recipient.
func (h *DelegateRegistrationHandler) ApplyToRecipient(tx *types.Transaction) error {
	return nil
}

func (h *DelegateRegistrationHandler) RevertForSender(tx *types.Transaction) error {
	sender := h.creditSender(tx)
	sender.Delegate = nil
	h.mu.Lock()
	delete(h.usernames, tx.Asset.Delegate.Username)
	h.mu.Unlock()
	h.wallets.Index(sender)
	return nil
}

func (h *DelegateRegistrationHandler) RevertForRecipient(tx *types.Transaction) error {
	return nil
}
