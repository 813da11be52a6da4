package store

import (
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/corvuschain/corvus/amount"
	"github.com/corvuschain/corvus/types"
)

// ErrTxNotFound is returned when a transaction ID is not in the store.
var ErrTxNotFound = errors.New("store: transaction not found")

// TransactionStore persists the historical transaction log. Handler
// bootstrap replays it at startup, and the HTLC handlers read lock
// transactions from it when reverting claims and refunds.
type TransactionStore struct {
	db  *Database
	log *logrus.Entry
}

func NewTransactionStore(db *Database, logger *logrus.Logger) *TransactionStore {
	return &TransactionStore{
		db:  db,
		log: logger.WithField("component", "tx-store"),
	}
}

func (s *TransactionStore) Save(tx *types.Transaction) error {
	if tx.ID == "" {
		return errors.New("store: transaction has no id")
	}
	data, err := cbor.Marshal(tx)
	if err != nil {
		return errors.Wrap(err, "serializing transaction")
	}
	if err := s.db.Set(txKey(tx.ID), data); err != nil {
		return err
	}
	// Secondary index so bootstrap can replay one kind at a time.
	return s.db.Set(txTypeKey(tx.Type, tx.ID), []byte(tx.ID))
}

func (s *TransactionStore) FindByID(id string) (*types.Transaction, error) {
	data, found, err := s.db.Get(txKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTxNotFound
	}
	var tx types.Transaction
	if err := cbor.Unmarshal(data, &tx); err != nil {
		return nil, errors.Wrapf(err, "decoding transaction %s", id)
	}
	return &tx, nil
}

func (s *TransactionStore) FindByType(t types.TxType) ([]*types.Transaction, error) {
	var ids []string
	prefix := []byte(TxTypePrefix + strconv.Itoa(int(t)) + "-")
	err := s.db.IteratePrefix(prefix, func(key, value []byte) error {
		ids = append(ids, string(value))
		return nil
	})
	if err != nil {
		return nil, err
	}

	txs := make([]*types.Transaction, 0, len(ids))
	for _, id := range ids {
		tx, err := s.FindByID(id)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// ReceivedTotals sums historical transfer amounts per recipient address.
func (s *TransactionStore) ReceivedTotals() (map[string]amount.Amount, error) {
	transfers, err := s.FindByType(types.TxTransfer)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]amount.Amount)
	for _, tx := range transfers {
		totals[tx.RecipientAddress] += tx.Amount
	}
	return totals, nil
}

func txKey(id string) []byte {
	return []byte(TransactionPrefix + id)
}

func txTypeKey(t types.TxType, id string) []byte {
	return []byte(TxTypePrefix + strconv.Itoa(int(t)) + "-" + id)
}
