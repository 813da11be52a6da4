package handlers

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/corvuschain/corvus/types"
)

// TxState tracks a transaction through the processor. The only legal
// transitions are Received -> Validated -> Applied and Applied -> Reverted.
type TxState uint8

const (
	StateReceived TxState = iota
	StateValidated
	StateApplied
	StateReverted
)

func (s TxState) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateValidated:
		return "validated"
	case StateApplied:
		return "applied"
	case StateReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Processor drives transactions through validation, apply and revert. It
// serializes apply/revert so no two mutations interleave on the same wallet;
// validation never mutates and may run concurrently with other validations.
type Processor struct {
	registry *Registry
	wallets  types.WalletRepository
	log      *logrus.Entry

	mu     sync.Mutex
	states map[string]TxState
}

func NewProcessor(registry *Registry, wallets types.WalletRepository, logger *logrus.Logger) *Processor {
	return &Processor{
		registry: registry,
		wallets:  wallets,
		log:      logger.WithField("component", "tx-processor"),
		states:   make(map[string]TxState),
	}
}

// State returns the processor's view of a transaction.
func (p *Processor) State(txID string) TxState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.states[txID]
}

// Validate checks a received transaction structurally and against current
// wallet state. It never mutates wallets; a rejected transaction stays in
// the received state.
func (p *Processor) Validate(tx *types.Transaction) error {
	if err := tx.Validate(); err != nil {
		return errors.Wrap(err, "malformed transaction")
	}
	handler, err := p.registry.Lookup(tx.Type, tx.Version)
	if err != nil {
		return err
	}
	sender := p.wallets.FindByAddress(tx.SenderAddress)
	if err := handler.CheckApply(tx, sender); err != nil {
		return err
	}

	p.mu.Lock()
	p.states[tx.ID] = StateValidated
	p.mu.Unlock()
	return nil
}

// Apply mutates wallet state for a validated transaction: first the sender
// side, then the recipient side.
func (p *Processor) Apply(tx *types.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.states[tx.ID] != StateValidated {
		return ErrNotValidated
	}
	handler, err := p.registry.Lookup(tx.Type, tx.Version)
	if err != nil {
		return err
	}
	if err := handler.ApplyToSender(tx); err != nil {
		return errors.Wrapf(err, "applying %s %s to sender", tx.Type, tx.ID)
	}
	if err := handler.ApplyToRecipient(tx); err != nil {
		// Apply is atomic: a failed recipient half must not leave the sender
		// half behind.
		if rerr := handler.RevertForSender(tx); rerr != nil {
			p.log.WithError(rerr).WithField("tx", tx.ID).Error("undoing sender apply")
		}
		return errors.Wrapf(err, "applying %s %s to recipient", tx.Type, tx.ID)
	}

	p.states[tx.ID] = StateApplied
	p.log.WithFields(logrus.Fields{"tx": tx.ID, "type": tx.Type.String()}).Debug("transaction applied")
	return nil
}

// Revert undoes an applied transaction in reverse order, restoring the
// pre-apply balances and nonces exactly. Used on chain reorganization.
func (p *Processor) Revert(tx *types.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.states[tx.ID] != StateApplied {
		return ErrNotApplied
	}
	handler, err := p.registry.Lookup(tx.Type, tx.Version)
	if err != nil {
		return err
	}
	if err := handler.RevertForRecipient(tx); err != nil {
		return errors.Wrapf(err, "reverting %s %s for recipient", tx.Type, tx.ID)
	}
	if err := handler.RevertForSender(tx); err != nil {
		return errors.Wrapf(err, "reverting %s %s for sender", tx.Type, tx.ID)
	}

	p.states[tx.ID] = StateReverted
	p.log.WithFields(logrus.Fields{"tx": tx.ID, "type": tx.Type.String()}).Debug("transaction reverted")
	return nil
}
