// Package handlers implements typed dispatch of transactions onto wallet
// state. Each transaction kind has a handler that validates a transaction
// against the current wallets, applies it, and reverts it symmetrically on
// chain reorganization. A registry resolves handlers by (type, version) once
// at startup; bootstrap replays the historical transaction log to rebuild
// derived wallet attributes.
package handlers

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/corvuschain/corvus/types"
)

// Handler is implemented once per transaction kind.
//
// CheckApply validates a transaction against the sender wallet and never
// mutates state. Apply and revert are exact inverses: reverting an applied
// transaction restores balances and nonces bit for bit.
type Handler interface {
	Type() types.TxType
	Version() uint8

	// Bootstrap replays historical transactions to rebuild derived wallet
	// state. It must run exactly once per startup against a clean wallet
	// repository; a second run double-counts.
	Bootstrap() error

	CheckApply(tx *types.Transaction, sender *types.Wallet) error
	ApplyToSender(tx *types.Transaction) error
	ApplyToRecipient(tx *types.Transaction) error
	RevertForSender(tx *types.Transaction) error
	RevertForRecipient(tx *types.Transaction) error
}

type handlerKey struct {
	typ     types.TxType
	version uint8
}

// Registry resolves handlers by transaction type and version.
type Registry struct {
	handlers map[handlerKey]Handler
	order    []Handler
	log      *logrus.Entry
}

// NewRegistry builds a registry with all built-in handlers registered.
func NewRegistry(wallets types.WalletRepository, txs types.TransactionRepository, logger *logrus.Logger) (*Registry, error) {
	r := &Registry{
		handlers: make(map[handlerKey]Handler),
		log:      logger.WithField("component", "handler-registry"),
	}

	base := baseHandler{
		wallets: wallets,
		txs:     txs,
		log:     logger.WithField("component", "handlers"),
	}

	for _, h := range []Handler{
		NewTransferHandler(base),
		NewDelegateRegistrationHandler(base),
		NewHtlcLockHandler(base),
		NewHtlcClaimHandler(base),
		NewHtlcRefundHandler(base),
	} {
		if err := r.Register(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a handler; registering the same (type, version) twice is an
// error.
func (r *Registry) Register(h Handler) error {
	key := handlerKey{typ: h.Type(), version: h.Version()}
	if _, exists := r.handlers[key]; exists {
		return errors.Errorf("handler for type %s v%d already registered", h.Type(), h.Version())
	}
	r.handlers[key] = h
	r.order = append(r.order, h)
	return nil
}

// Lookup resolves the handler for a transaction type and version.
func (r *Registry) Lookup(t types.TxType, version uint8) (Handler, error) {
	h, ok := r.handlers[handlerKey{typ: t, version: version}]
	if !ok {
		return nil, errors.Wrapf(ErrUnregisteredType, "type %s v%d", t, version)
	}
	return h, nil
}

// Bootstrap runs every handler's bootstrap in registration order.
func (r *Registry) Bootstrap() error {
	for _, h := range r.order {
		r.log.WithField("type", h.Type().String()).Info("bootstrapping handler")
		if err := h.Bootstrap(); err != nil {
			return errors.Wrapf(err, "bootstrapping %s handler", h.Type())
		}
	}
	return nil
}
